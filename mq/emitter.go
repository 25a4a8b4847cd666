package mq

import (
	"encoding/json"
	"log"

	"foodgram/models"
)

// Sink receives serialized events. main wires this to the websocket hub;
// it stays nil in tests and offline tools.
var Sink func(data []byte)

type event struct {
	Event string       `json:"event"`
	Data  models.Index `json:"data"`
}

// Emit publishes a domain event to the sink.
func Emit(eventName string, content models.Index) error {
	data, err := json.Marshal(event{Event: eventName, Data: content})
	if err != nil {
		return err
	}
	if Sink != nil {
		Sink(data)
	}
	return nil
}

// Notify is Emit for events nobody is expected to act on.
func Notify(eventName string, content models.Index) error {
	if err := Emit(eventName, content); err != nil {
		log.Printf("notify %s failed: %v", eventName, err)
		return err
	}
	return nil
}
