package service

import "encoding/json"

// jsonCodec serializes RPC messages with encoding/json. Registering it on
// both handlers and clients keeps the whole surface on plain JSON structs.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}
