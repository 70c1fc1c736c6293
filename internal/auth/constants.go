package auth

const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
	QueryParamToken     = "token"
)

// Error messages
const (
	ErrMsgMissingToken = "missing token"
	ErrMsgInvalidToken = "invalid token"
	ErrMsgExpiredToken = "token expired"
	ErrMsgBadClaims    = "bad claims"
	ErrMsgEmptySubject = "token subject is empty"
)
