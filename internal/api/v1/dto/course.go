package dto

// CourseSummaryDTO is one entry of the catalog listing
type CourseSummaryDTO struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Instructor   string `json:"instructor"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Level        string `json:"level"`
	Duration     string `json:"duration"`
	ChapterCount int    `json:"chapter_count"`
	LessonCount  int    `json:"lesson_count"`
}

// CourseDetailDTO is a course with its curriculum outline
type CourseDetailDTO struct {
	CourseSummaryDTO
	Chapters []ChapterOutlineDTO `json:"chapters"`
}

type ChapterOutlineDTO struct {
	ID      int                `json:"id"`
	Title   string             `json:"title"`
	Lessons []LessonOutlineDTO `json:"lessons"`
}

type LessonOutlineDTO struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Type     string `json:"type"`
}
