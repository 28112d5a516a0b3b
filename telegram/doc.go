// Package telegram is a client for the Telegram Bot API.
//
// Every API method is a request type that declares its result type by
// embedding [Returns]. A [Bot] holds the token, endpoint and HTTP client and
// dispatches requests with [Do]:
//
//	bot := telegram.New(os.Getenv("TELEGRAM_BOT_TOKEN"))
//	me, err := telegram.Do(ctx, bot, telegram.GetMe{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(me.Username)
//
// # Encoding
//
// A request is rendered by marshalling it to JSON. When none of its files is
// uploaded by bytes it is sent as a JSON body. Otherwise it is sent as a
// multipart form: every parameter becomes a text field (strings as is,
// anything else as compact JSON) and every uploaded file becomes a binary
// part.
//
//	msg, err := telegram.Do(ctx, bot, telegram.SendPhoto{
//	    ChatID: telegram.NewChatID(chatID),
//	    Photo:  telegram.FileBytes("cat.jpg", data),
//	})
//
// Optional parameters are omitted when empty, never sent as null.
//
// # Variants
//
// Fields that accept several shapes are modelled as closed variants:
// [FileRef], [ChatID], [ReplyMarkup], [InputMedia], [InlineQueryResult] and
// [MessageOrBool]. Each documents the order in which shapes are tried when
// decoding.
//
// # Errors
//
// Every failed call returns a *core.APIError. Its Err field is one of
// core.ErrNetwork, core.ErrEncode, core.ErrDecode or a remote class wrapping
// core.ErrRemote:
//
//	if errors.Is(err, core.ErrRateLimited) {
//	    apiErr, _ := core.AsAPIError(err)
//	    time.Sleep(time.Duration(apiErr.RetryAfter) * time.Second)
//	}
//
// The client never retries, caches or queues: each request is exactly one
// HTTP call with exactly one outcome.
package telegram
