// Package i18n holds the portal's bilingual UI strings as typed bundles.
// Each supported language maps to a Bundle struct, so a missing translation
// is a missing struct field, caught when the literal below is compiled,
// not at lookup time.
package i18n

import "golang.org/x/text/language"

// Language is a supported UI language.
type Language string

const (
	English Language = "english"
	Telugu  Language = "telugu"
)

var tags = map[Language]language.Tag{
	English: language.English,
	Telugu:  language.Make("te"),
}

var matcher = language.NewMatcher([]language.Tag{
	language.English, // first tag is the fallback
	language.Make("te"),
})

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	return tags[l]
}

// Negotiate picks the best supported language for the given preferences:
// an explicit ?lang= value first, then the Accept-Language header. English
// is the fallback for anything unrecognized.
func Negotiate(query, acceptLanguage string) Language {
	switch Language(query) {
	case English, Telugu:
		return Language(query)
	}
	_, idx := language.MatchStrings(matcher, acceptLanguage)
	if idx == 1 {
		return Telugu
	}
	return English
}

// Bundle is the complete set of translatable portal messages.
type Bundle struct {
	QuizTitle  string
	QuestionOf string
	Submit     string
	Next       string
	Finish     string
	Correct    string
	Incorrect  string
	YourScore  string
	Retry      string
	Continue   string

	NextLesson     string
	PreviousLesson string
	CompletedQuiz  string
	LessonNotFound string
	CourseNotFound string

	NameRequired     string
	EmailRequired    string
	InvalidEmail     string
	PasswordRequired string
	PasswordLength   string
	PasswordMismatch string
	InvalidRole      string
}

var bundles = map[Language]Bundle{
	English: {
		QuizTitle:  "Knowledge Check",
		QuestionOf: "Question {{current}} of {{total}}",
		Submit:     "Submit Answer",
		Next:       "Next Question",
		Finish:     "Finish Quiz",
		Correct:    "Correct!",
		Incorrect:  "Incorrect!",
		YourScore:  "Your Score",
		Retry:      "Retry Quiz",
		Continue:   "Continue to Next Lesson",

		NextLesson:     "Next Lesson",
		PreviousLesson: "Previous Lesson",
		CompletedQuiz:  "You completed this quiz with a score of",
		LessonNotFound: "Lesson not found",
		CourseNotFound: "Course not found",

		NameRequired:     "Name is required",
		EmailRequired:    "Email is required",
		InvalidEmail:     "Invalid email format",
		PasswordRequired: "Password is required",
		PasswordLength:   "Password must be at least 6 characters",
		PasswordMismatch: "Passwords do not match",
		InvalidRole:      "Unknown role",
	},
	Telugu: {
		QuizTitle:  "జ్ఞాన తనిఖీ",
		QuestionOf: "ప్రశ్న {{current}} మొత్తం {{total}} లో",
		Submit:     "సమాధానాన్ని సమర్పించండి",
		Next:       "తదుపరి ప్రశ్న",
		Finish:     "క్విజ్ ముగించండి",
		Correct:    "సరైనది!",
		Incorrect:  "తప్పు!",
		YourScore:  "మీ స్కోరు",
		Retry:      "క్విజ్‌ను మళ్లీ ప్రయత్నించండి",
		Continue:   "తదుపరి పాఠానికి కొనసాగించండి",

		NextLesson:     "తదుపరి పాఠం",
		PreviousLesson: "మునుపటి పాఠం",
		CompletedQuiz:  "మీరు ఈ క్విజ్‌ను స్కోరుతో పూర్తి చేసారు",
		LessonNotFound: "పాఠం కనుగొనబడలేదు",
		CourseNotFound: "కోర్సు కనుగొనబడలేదు",

		NameRequired:     "పేరు అవసరం",
		EmailRequired:    "ఇమెయిల్ అవసరం",
		InvalidEmail:     "చెల్లని ఇమెయిల్ ఫార్మాట్",
		PasswordRequired: "పాస్‌వర్డ్ అవసరం",
		PasswordLength:   "పాస్‌వర్డ్ కనీసం 6 అక్షరాలు ఉండాలి",
		PasswordMismatch: "పాస్‌వర్డ్‌లు సరిపోలలేదు",
		InvalidRole:      "తెలియని పాత్ర",
	},
}

// For returns the message bundle for a language.
func For(l Language) Bundle {
	if b, ok := bundles[l]; ok {
		return b
	}
	return bundles[English]
}

// Validation maps a field validation key emitted by the session store to
// its localized message.
func (b Bundle) Validation(key string) string {
	switch key {
	case "name_required":
		return b.NameRequired
	case "email_required":
		return b.EmailRequired
	case "email_invalid":
		return b.InvalidEmail
	case "password_required":
		return b.PasswordRequired
	case "password_length":
		return b.PasswordLength
	case "password_mismatch":
		return b.PasswordMismatch
	case "role_invalid":
		return b.InvalidRole
	}
	return key
}
