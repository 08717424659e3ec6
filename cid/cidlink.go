package cid

import (
	"encoding/json"
	"fmt"
)

// CidLink is a CID's multibase string form wrapped for encoding/json
// interop, for callers working with plain JSON documents outside this
// module's native atjson mode (cbor.WithAtjson).
type CidLink string

// Link returns c wrapped as a CidLink for encoding/json marshaling.
func (c Cid) Link() CidLink {
	return CidLink(c.String())
}

type jsonLink struct {
	Link string `json:"$link"`
}

func (ll CidLink) MarshalJSON() ([]byte, error) {
	jl := jsonLink{
		Link: string(ll),
	}
	return json.Marshal(jl)
}

func (ll *CidLink) UnmarshalJSON(raw []byte) error {
	var jl jsonLink
	if err := json.Unmarshal(raw, &jl); err != nil {
		return fmt.Errorf("parsing cid-link JSON: %v", err)
	}

	c, err := Parse(jl.Link)
	if err != nil {
		return fmt.Errorf("parsing cid-link CID: %v", err)
	}
	*ll = CidLink(c.String())
	return nil
}
