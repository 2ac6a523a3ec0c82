// internal/models/dialog.go
package models

import "encoding/json"

// Invocation sources sent by the dialog engine with every code hook call.
const (
	InvocationDialogCodeHook      = "DialogCodeHook"
	InvocationFulfillmentCodeHook = "FulfillmentCodeHook"
)

// Dialog action types.
const (
	DialogActionElicitSlot = "ElicitSlot"
	DialogActionDelegate   = "Delegate"
	DialogActionClose      = "Close"
)

const (
	FulfillmentStateFulfilled = "Fulfilled"
	FulfillmentStateFailed    = "Failed"

	ContentTypePlainText = "PlainText"
)

// ConversationEvent is the code hook request the dialog engine posts for each
// conversational turn.
type ConversationEvent struct {
	CurrentIntent     CurrentIntent     `json:"currentIntent"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
	InvocationSource  string            `json:"invocationSource"`
	Bot               BotInfo           `json:"bot"`
	UserID            string            `json:"userId,omitempty"`
	InputTranscript   string            `json:"inputTranscript,omitempty"`
	OutputDialogMode  string            `json:"outputDialogMode,omitempty"`
	MessageVersion    string            `json:"messageVersion,omitempty"`
}

type CurrentIntent struct {
	Name               string  `json:"name" binding:"required"`
	Slots              SlotSet `json:"slots"`
	ConfirmationStatus string  `json:"confirmationStatus,omitempty"`
}

type BotInfo struct {
	Name    string `json:"name"`
	Alias   string `json:"alias,omitempty"`
	Version string `json:"version,omitempty"`
}

// Message is a plain text prompt or confirmation.
type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// PlainText builds a Message of content type PlainText.
func PlainText(content string) *Message {
	return &Message{ContentType: ContentTypePlainText, Content: content}
}

// DialogAction is the tagged dialog outcome. Type selects which of the
// remaining fields are meaningful.
type DialogAction struct {
	Type             string   `json:"type"`
	IntentName       string   `json:"intentName,omitempty"`
	Slots            SlotSet  `json:"slots"`
	SlotToElicit     string   `json:"slotToElicit,omitempty"`
	FulfillmentState string   `json:"fulfillmentState,omitempty"`
	Message          *Message `json:"message,omitempty"`
}

// MarshalJSON always writes slots for ElicitSlot and Delegate, as {} when
// none were collected, and leaves them off Close.
func (a DialogAction) MarshalJSON() ([]byte, error) {
	type wire DialogAction
	if a.Type == DialogActionClose {
		return json.Marshal(struct {
			wire
			Slots SlotSet `json:"slots,omitempty"`
		}{wire: wire(a)})
	}
	a.Slots = slotsOrEmpty(a.Slots)
	return json.Marshal(wire(a))
}

// DialogResponse is what the code hook returns to the dialog engine.
type DialogResponse struct {
	SessionAttributes map[string]string `json:"sessionAttributes"`
	DialogAction      DialogAction      `json:"dialogAction"`
}

// ElicitSlot asks the user to supply slot again. A nil message leaves the
// prompt to the engine.
func ElicitSlot(session map[string]string, intentName string, slots SlotSet, slot string, message *Message) DialogResponse {
	return DialogResponse{
		SessionAttributes: sessionOrEmpty(session),
		DialogAction: DialogAction{
			Type:         DialogActionElicitSlot,
			IntentName:   intentName,
			Slots:        slotsOrEmpty(slots),
			SlotToElicit: slot,
			Message:      message,
		},
	}
}

// Delegate hands the remaining slot collection back to the engine.
func Delegate(session map[string]string, slots SlotSet) DialogResponse {
	return DialogResponse{
		SessionAttributes: sessionOrEmpty(session),
		DialogAction: DialogAction{
			Type:  DialogActionDelegate,
			Slots: slotsOrEmpty(slots),
		},
	}
}

// Close ends the intent.
func Close(session map[string]string, fulfillmentState string, message *Message) DialogResponse {
	return DialogResponse{
		SessionAttributes: sessionOrEmpty(session),
		DialogAction: DialogAction{
			Type:             DialogActionClose,
			FulfillmentState: fulfillmentState,
			Message:          message,
		},
	}
}

func sessionOrEmpty(session map[string]string) map[string]string {
	if session == nil {
		return map[string]string{}
	}
	return session
}

func slotsOrEmpty(slots SlotSet) SlotSet {
	if slots == nil {
		return SlotSet{}
	}
	return slots
}
