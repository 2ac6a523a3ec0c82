// internal/common/aws/lex.go
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimeservice"

	"dining-concierge/internal/common/errors"
)

// LexAPI is the slice of *lexruntimeservice.Client used here.
type LexAPI interface {
	PostText(ctx context.Context, params *lexruntimeservice.PostTextInput, optFns ...func(*lexruntimeservice.Options)) (*lexruntimeservice.PostTextOutput, error)
}

// LexClient talks to one bot alias.
type LexClient struct {
	api      LexAPI
	botName  string
	botAlias string
}

func NewLexClient(api LexAPI, botName, botAlias string) *LexClient {
	return &LexClient{api: api, botName: botName, botAlias: botAlias}
}

// PostText returns the HTTP status code and the bot's reply text.
func (l *LexClient) PostText(ctx context.Context, userID, text string) (int, string, error) {
	out, err := l.api.PostText(ctx, &lexruntimeservice.PostTextInput{
		BotName:   awssdk.String(l.botName),
		BotAlias:  awssdk.String(l.botAlias),
		UserId:    awssdk.String(userID),
		InputText: awssdk.String(text),
	})
	if err != nil {
		return 0, "", errors.NewDialogEngineError(err)
	}
	return statusCode(out.ResultMetadata), awssdk.ToString(out.Message), nil
}
