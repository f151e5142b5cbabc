package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID               uint   `gorm:"primaryKey"`
	VkID             int64  `gorm:"uniqueIndex;not null"`
	Name             string `gorm:"type:varchar(32);not null"`
	PhotoURL         string `gorm:"type:varchar(500)"`
	RegistrationDate int64  `gorm:"autoCreateTime"`
	IsAdmin          bool   `gorm:"not null;default:false"`
	IsActive         bool   `gorm:"not null;default:true"`
}

func (UserModel) TableName() string {
	return "users"
}

// PostModel é o model GORM para posts
type PostModel struct {
	ID           uint   `gorm:"primaryKey"`
	Title        string `gorm:"type:varchar(32);not null"`
	AuthorID     uint   `gorm:"not null;index"`
	IsPublished  bool   `gorm:"not null;default:false"`
	CreationDate int64  `gorm:"autoCreateTime"`
	EditingDate  int64  `gorm:"autoUpdateTime"`
}

func (PostModel) TableName() string {
	return "posts"
}

// PollModel é o model GORM para enquetes. Options é a lista de rótulos
// serializada como JSON; DeletedAt é o tombstone do soft delete,
// mantido manualmente (sem gorm.DeletedAt) porque a reconciliação
// precisa ler e restaurar registros deletados.
type PollModel struct {
	ID                    uint   `gorm:"primaryKey"`
	PostID                uint   `gorm:"not null;index"`
	Name                  string `gorm:"type:varchar(32);not null"`
	Style                 int    `gorm:"not null"`
	Options               string `gorm:"type:text;not null"`
	MaxChosenOptionsCount int    `gorm:"not null"`
	DeletedAt             *int64 `gorm:"index"` // Soft delete
}

func (PollModel) TableName() string {
	return "polls"
}

// OptionChoiceModel é o model GORM para votos. A unicidade da tripla
// (usuário, enquete, índice) é garantida pelo índice composto.
type OptionChoiceModel struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_choice_user_poll_option;index"`
	PollID      uint `gorm:"not null;uniqueIndex:idx_choice_user_poll_option;index"`
	OptionIndex int  `gorm:"not null;uniqueIndex:idx_choice_user_poll_option"`
}

func (OptionChoiceModel) TableName() string {
	return "poll_option_choices"
}
