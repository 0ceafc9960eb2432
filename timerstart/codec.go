/* Copyright (c) 2021 David Bulkow */

package timerstart

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encMode is deterministic so equal tokens encode to equal bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create timer start CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create timer start CBOR decoder mode: %v", err))
	}
}

// Marshal encodes a timer start for handing to another process.
func Marshal(s TimerStart) ([]byte, error) {
	if s.Kind != KindDuration && s.Kind != KindDateTime {
		return nil, argumentError(fmt.Sprintf("cannot encode timer start kind %d", s.Kind))
	}
	return encMode.Marshal(s)
}

// Unmarshal decodes a timer start written by Marshal. The token is not
// checked for validity.
func Unmarshal(data []byte) (TimerStart, error) {
	var s TimerStart
	if err := decMode.Unmarshal(data, &s); err != nil {
		return TimerStart{}, fmt.Errorf("decoding timer start: %w", err)
	}

	if s.Kind != KindDuration && s.Kind != KindDateTime {
		return TimerStart{}, fmt.Errorf("decoding timer start: unknown kind %d", s.Kind)
	}

	return s, nil
}
