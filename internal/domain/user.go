package domain

type Role string

const (
	RoleHost        Role = "host"
	RoleSpeaker     Role = "speaker"
	RoleParticipant Role = "participant"
)

// Reaction — эмодзи-реакция участника; пустая строка = нет реакции.
type Reaction string

const (
	ReactionThumbsUp  Reaction = "thumbsUp"
	ReactionClap      Reaction = "clap"
	ReactionSmile     Reaction = "smile"
	ReactionHeart     Reaction = "heart"
	ReactionSurprised Reaction = "surprised"
	ReactionThinking  Reaction = "thinking"
)

type User struct {
	ID              string
	Name            string
	Role            Role
	IsSpeaking      bool
	IsMuted         bool
	IsVideoOn       bool
	IsScreenSharing bool
	IsHandRaised    bool
	Reaction        Reaction
}
