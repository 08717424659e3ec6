package cid

import (
	"encoding/json"
	"testing"
)

func TestCidLinkMarshalJSON(t *testing.T) {
	c, err := Create(CodecCbor, []byte("abc"))
	if err != nil {
		t.Fatal(err)
	}

	raw, err := json.Marshal(c.Link())
	if err != nil {
		t.Fatal(err)
	}

	want := `{"$link":"` + c.String() + `"}`
	if string(raw) != want {
		t.Fatalf("got %s, want %s", raw, want)
	}
}

func TestCidLinkUnmarshalJSON(t *testing.T) {
	c, err := Create(CodecCbor, []byte("abc"))
	if err != nil {
		t.Fatal(err)
	}

	var ll CidLink
	raw := []byte(`{"$link":"` + c.String() + `"}`)
	if err := json.Unmarshal(raw, &ll); err != nil {
		t.Fatal(err)
	}

	if string(ll) != c.String() {
		t.Fatalf("got %s, want %s", ll, c.String())
	}
}

func TestCidLinkUnmarshalJSONInvalid(t *testing.T) {
	var ll CidLink
	err := json.Unmarshal([]byte(`{"$link":"not-a-cid"}`), &ll)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCidLinkRoundTripThroughStruct(t *testing.T) {
	c, err := Create(CodecRaw, []byte("record"))
	if err != nil {
		t.Fatal(err)
	}

	type doc struct {
		Parent CidLink `json:"parent"`
	}

	raw, err := json.Marshal(doc{Parent: c.Link()})
	if err != nil {
		t.Fatal(err)
	}

	var got doc
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if string(got.Parent) != c.String() {
		t.Fatalf("got %s, want %s", got.Parent, c.String())
	}
}
