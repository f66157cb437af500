package models

// Level classifies course difficulty.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Course is the root of the catalog tree. Immutable once loaded.
type Course struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Thumbnail   string   `yaml:"thumbnail" json:"thumbnail,omitempty"`
	Modules     []Module `yaml:"modules" json:"modules"`
	Level       Level    `yaml:"level" json:"level"`
	Author      string   `yaml:"author" json:"author"`
	CreatedAt   string   `yaml:"created_at" json:"createdAt"`
}

// Module groups an ordered sequence of lessons inside one course.
type Module struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Lessons     []Lesson `yaml:"lessons" json:"lessons"`
}

// Lesson carries the content a learner views. Content is trusted markup
// sourced from catalog files only, never from request input.
type Lesson struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Content   string     `yaml:"content" json:"content"`
	VideoURL  string     `yaml:"video_url" json:"videoUrl,omitempty"`
	Resources []Resource `yaml:"resources" json:"resources,omitempty"`
	Quiz      *Quiz      `yaml:"quiz" json:"quiz,omitempty"`
}

// Resource is a supplementary link attached to a lesson.
type Resource struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Type  string `yaml:"type" json:"type"` // pdf, link, image
	URL   string `yaml:"url" json:"url"`
}

// Quiz is embedded in at most one lesson; its presence is what makes the
// lesson a graded interaction.
type Quiz struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// Question is a single-choice question with the index of the correct option.
type Question struct {
	ID            string   `yaml:"id" json:"id"`
	Text          string   `yaml:"text" json:"text"`
	Options       []string `yaml:"options" json:"options"`
	CorrectAnswer int      `yaml:"correct_answer" json:"correctAnswer"`
}
