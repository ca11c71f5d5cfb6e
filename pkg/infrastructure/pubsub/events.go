package pubsub

import (
	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// NewCloudEvent builds a CloudEvent v1.0 with a JSON-encoded payload.
// Both the refresh trigger and the computed-result event go through here
// so every message on our topics carries the same envelope shape.
func NewCloudEvent(source, eventType string, data interface{}) (cloudevents.Event, error) {
	e := cloudevents.NewEvent()
	e.SetSpecVersion("1.0")
	e.SetSource(source)
	e.SetType(eventType)

	if err := e.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return e, err
	}
	return e, nil
}
