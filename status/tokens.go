package status

type Tone string

const (
	TonePrimary Tone = "primary"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
	TonePoint   Tone = "point"
	ToneNeutral Tone = "neutral"
)

// Key identifies a token. Tone and label are looked up by key.
type Key string

const (
	// viewer scoped
	KeyHost        Key = "HOST"
	KeyMember      Key = "MEMBER"
	KeyPending     Key = "PENDING"
	KeyRejected    Key = "REJECTED"
	KeyJoinBlocked Key = "JOIN_BLOCKED"

	// system scoped
	KeyFull     Key = "FULL"
	KeyCanceled Key = "CANCELED"
	KeyEnded    Key = "ENDED"
	KeyStarted  Key = "STARTED"

	// join mode
	KeyInstant  Key = "INSTANT"
	KeyApproval Key = "APPROVAL"
)

type Token struct {
	Key      Key    `json:"key"`
	Label    string `json:"label"`
	Tone     Tone   `json:"tone"`
	Priority int    `json:"priority"`
}

type tokenSpec struct {
	label    string
	tone     Tone
	priority int
}

var tokenTable = map[Key]tokenSpec{
	KeyHost:        {"내 모임", TonePrimary, 10},
	KeyMember:      {"참여중", ToneSuccess, 20},
	KeyPending:     {"승인대기", ToneWarning, 30},
	KeyRejected:    {"거절됨", ToneError, 40},
	KeyJoinBlocked: {"참여불가", ToneNeutral, 50},

	KeyFull:     {"정원마감", ToneError, 10},
	KeyCanceled: {"취소됨", ToneNeutral, 20},
	KeyEnded:    {"종료", ToneNeutral, 30},
	KeyStarted:  {"진행중", ToneInfo, 40},

	KeyInstant:  {"⚡ 바로참여", TonePoint, 10},
	KeyApproval: {"🙋 승인제", ToneInfo, 10},
}

// NewToken builds the token for key from the fixed lookup table.
func NewToken(key Key) Token {
	spec, ok := tokenTable[key]
	if !ok {
		return Token{Key: key, Label: string(key), Tone: ToneNeutral}
	}
	return Token{Key: key, Label: spec.label, Tone: spec.tone, Priority: spec.priority}
}

// ToneOf returns the tone for key.
func ToneOf(key Key) Tone {
	return NewToken(key).Tone
}
