package domain

import "time"

const (
	CategoryTechnical    = "technical"
	CategoryNonTechnical = "nonTechnical"

	CourseStatusPending  = "approval pending"
	CourseStatusApproved = "approve"
	CourseStatusRejected = "reject"

	// Длительность контента по умолчанию, в часах
	DefaultContentHours = 5
)

// Каталог наполняется сервисом авторинга, здесь он только читается.
type Course struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"index;not null"`
	Category string `gorm:"index;not null"`
	Status   string `gorm:"default:'approval pending'"`

	// Связь один-ко-многим: у курса много глав
	Chapters  []Chapter  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
	Questions []Question `gorm:"foreignKey:CourseID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Chapter struct {
	ID       uint `gorm:"primaryKey"`
	CourseID uint `gorm:"index;not null"`
	Title    string

	Contents  []Content  `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE;"`
	Questions []Question `gorm:"foreignKey:ChapterID"`
}

type Content struct {
	ID                     uint `gorm:"primaryKey"`
	ChapterID              uint `gorm:"index;not null"`
	Title                  string
	ContentType            string // video, text, ...
	ExpectedTimeToComplete int    `gorm:"not null;default:5"`
}

// Вопрос привязан либо к курсу, либо к главе курса.
type Question struct {
	ID            uint  `gorm:"primaryKey"`
	CourseID      *uint `gorm:"index"`
	ChapterID     *uint `gorm:"index"`
	Question      string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string `gorm:"not null"`
}

// ContentRef - контент вместе с курсом, которому он принадлежит.
type ContentRef struct {
	ContentID              uint
	ChapterID              uint
	CourseID               uint
	ExpectedTimeToComplete int
}
