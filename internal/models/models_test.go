package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotSet(t *testing.T) {
	slots := SlotSet{
		SlotCuisine: StringPtr("thai"),
		SlotDate:    nil,
	}

	assert.Equal(t, "thai", slots.Value(SlotCuisine))
	assert.Nil(t, slots.Get(SlotDate))
	assert.Equal(t, "", slots.Value(SlotLocation))

	clone := slots.Clone()
	clone.Clear(SlotCuisine)
	assert.Nil(t, clone.Get(SlotCuisine))
	assert.Equal(t, "thai", slots.Value(SlotCuisine))

	var empty SlotSet
	assert.Nil(t, empty.Get(SlotCuisine))
	empty.Clear(SlotCuisine)
	assert.Empty(t, empty.Clone())
}

func TestNewReservationRequest(t *testing.T) {
	req := NewReservationRequest(SlotSet{
		SlotLocation:       StringPtr("Manhattan"),
		SlotCuisine:        StringPtr("italian"),
		SlotDate:           StringPtr("2030-05-01"),
		SlotTime:           StringPtr("19:00"),
		SlotNumberOfPeople: StringPtr("2"),
	})

	assert.Equal(t, ReservationRequest{
		Location:       "Manhattan",
		Cuisine:        "italian",
		Date:           "2030-05-01",
		Time:           "19:00",
		NumberOfPeople: "2",
	}, req)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"location":"Manhattan","cuisine":"italian","date":"2030-05-01","time":"19:00","numberOfPeople":"2","emailAddress":""}`, string(data))
}

func TestNewReservationRequest_CanonicalPartySize(t *testing.T) {
	tests := map[string]string{
		"2":   "2",
		"+2":  "2",
		" 2":  "2",
		"2 ":  "2",
		"007": "7",
		"two": "two",
		"":    "",
	}
	for in, want := range tests {
		req := NewReservationRequest(SlotSet{SlotNumberOfPeople: StringPtr(in)})
		assert.Equal(t, want, req.NumberOfPeople, "input %q", in)
	}
}

func TestDialogResponseWireShapes(t *testing.T) {
	tests := []struct {
		name string
		resp DialogResponse
		want string
	}{
		{
			name: "elicit without message",
			resp: ElicitSlot(nil, "DiningSuggestionIntent", SlotSet{SlotTime: nil}, SlotTime, nil),
			want: `{"sessionAttributes":{},"dialogAction":{"type":"ElicitSlot","intentName":"DiningSuggestionIntent","slots":{"time":null},"slotToElicit":"time"}}`,
		},
		{
			name: "elicit with message",
			resp: ElicitSlot(map[string]string{"k": "v"}, "DiningSuggestionIntent", SlotSet{SlotCuisine: nil}, SlotCuisine, PlainText("pick one")),
			want: `{"sessionAttributes":{"k":"v"},"dialogAction":{"type":"ElicitSlot","intentName":"DiningSuggestionIntent","slots":{"cuisine":null},"slotToElicit":"cuisine","message":{"contentType":"PlainText","content":"pick one"}}}`,
		},
		{
			name: "delegate",
			resp: Delegate(nil, SlotSet{SlotCuisine: StringPtr("french")}),
			want: `{"sessionAttributes":{},"dialogAction":{"type":"Delegate","slots":{"cuisine":"french"}}}`,
		},
		{
			name: "delegate with no slots collected",
			resp: Delegate(nil, nil),
			want: `{"sessionAttributes":{},"dialogAction":{"type":"Delegate","slots":{}}}`,
		},
		{
			name: "elicit with no slots collected",
			resp: ElicitSlot(nil, "DiningSuggestionIntent", nil, SlotCuisine, nil),
			want: `{"sessionAttributes":{},"dialogAction":{"type":"ElicitSlot","intentName":"DiningSuggestionIntent","slots":{},"slotToElicit":"cuisine"}}`,
		},
		{
			name: "delegate built by hand with nil slots",
			resp: DialogResponse{SessionAttributes: map[string]string{}, DialogAction: DialogAction{Type: DialogActionDelegate}},
			want: `{"sessionAttributes":{},"dialogAction":{"type":"Delegate","slots":{}}}`,
		},
		{
			name: "close",
			resp: Close(nil, FulfillmentStateFulfilled, PlainText("bye")),
			want: `{"sessionAttributes":{},"dialogAction":{"type":"Close","fulfillmentState":"Fulfilled","message":{"contentType":"PlainText","content":"bye"}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestConversationEventDecoding(t *testing.T) {
	raw := `{
		"currentIntent": {"name": "DiningSuggestionIntent", "slots": {"cuisine": "korean", "date": null}},
		"sessionAttributes": null,
		"invocationSource": "DialogCodeHook",
		"bot": {"name": "RecommendRestaurant"}
	}`

	var event ConversationEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))
	assert.Equal(t, "DiningSuggestionIntent", event.CurrentIntent.Name)
	assert.Equal(t, "korean", event.CurrentIntent.Slots.Value(SlotCuisine))
	assert.Nil(t, event.CurrentIntent.Slots.Get(SlotDate))
	assert.Nil(t, event.SessionAttributes)
	assert.Equal(t, InvocationDialogCodeHook, event.InvocationSource)
	assert.Equal(t, "RecommendRestaurant", event.Bot.Name)
}
