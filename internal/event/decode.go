package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns an event payload as T. Events published in process carry T
// (or *T) already; payloads read back from the event history are generic JSON maps
// and go through a JSON conversion.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T

	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	if input == nil {
		return result, fmt.Errorf(ErrMsgNilPayload, result)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf(ErrMsgDecodePayload, result, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf(ErrMsgDecodePayload, result, err)
	}
	return result, nil
}
