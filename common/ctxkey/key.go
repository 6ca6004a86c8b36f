package ctxkey

const (
	Id               = "id"
	TokenId          = "token_id"
	TokenName        = "token_name"
	KeyRequestBody   = "key_request_body"
	QueueInternal    = "queue_internal"
	RequestStartTime = "request_start_time"
)
