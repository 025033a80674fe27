package repository

import "courseplayer/internal/model"

// SeedCourses is the built-in catalog served when no database is configured.
func SeedCourses() []model.Course {
	return []model.Course{
		{
			ID:          "1",
			Title:       "Complete Web Development Bootcamp",
			Instructor:  "Dr. Angela Yu",
			Description: "Learn HTML, CSS, JavaScript, React, Node.js and build 10+ projects.",
			Category:    "Programming",
			Level:       "Beginner",
			Duration:    "65 hours",
			Chapters: []model.Chapter{
				{
					ID:    1,
					Title: "Getting Started",
					Lessons: []model.Lesson{
						{
							ID: 1, Title: "Introduction to Web Development", DurationLabel: "15 min", Kind: model.LessonVideo,
							VideoURL:    "https://www.youtube.com/embed/UB1O30fR-EE",
							Description: "Welcome to the course! An overview of what web development is and what you'll learn.",
							Resources: []model.Resource{
								{Name: "Course Slides", Type: "pdf", Key: "courses/1/lessons/1/slides.pdf"},
								{Name: "Code Examples", Type: "zip", Key: "courses/1/lessons/1/examples.zip"},
							},
						},
						{
							ID: 2, Title: "HTML Basics", DurationLabel: "45 min", Kind: model.LessonVideo,
							VideoURL:    "https://www.youtube.com/embed/qz0aGYrrlhU",
							Description: "Tags, elements, and document structure.",
							Resources: []model.Resource{
								{Name: "HTML Reference", Type: "pdf", Key: "courses/1/lessons/2/html-reference.pdf"},
								{Name: "Practice Files", Type: "zip", Key: "courses/1/lessons/2/practice.zip"},
							},
						},
						{
							ID: 3, Title: "CSS Fundamentals", DurationLabel: "60 min", Kind: model.LessonVideo,
							VideoURL:    "https://www.youtube.com/embed/1Rs2ND1ryYc",
							Description: "CSS styling, selectors, properties, and responsive design principles.",
							Resources: []model.Resource{
								{Name: "CSS Cheat Sheet", Type: "pdf", Key: "courses/1/lessons/3/css-cheat-sheet.pdf"},
							},
						},
					},
				},
				{
					ID:    2,
					Title: "JavaScript Essentials",
					Lessons: []model.Lesson{
						{
							ID: 4, Title: "JavaScript Introduction", DurationLabel: "90 min", Kind: model.LessonVideo,
							VideoURL:    "https://www.youtube.com/embed/PkZNo7MFNFg",
							Description: "Variables, functions, and basic concepts.",
							Resources: []model.Resource{
								{Name: "JavaScript Guide", Type: "pdf", Key: "courses/1/lessons/4/js-guide.pdf"},
								{Name: "Exercise Files", Type: "zip", Key: "courses/1/lessons/4/exercises.zip"},
							},
						},
						{
							ID: 5, Title: "DOM Manipulation", DurationLabel: "75 min", Kind: model.LessonVideo,
							VideoURL:    "https://www.youtube.com/embed/0ik6X4DJKCc",
							Description: "Interact with web pages using JavaScript DOM manipulation.",
						},
						{
							ID: 6, Title: "JavaScript Quiz", DurationLabel: "20 min", Kind: model.LessonQuiz,
							Description: "Test your JavaScript knowledge with this interactive quiz.",
							Quiz: []model.Question{
								{
									ID: 1, Kind: model.MultipleChoiceQuestion,
									Prompt:        "What is the correct way to declare a variable in JavaScript?",
									Options:       []string{"var myVar;", "variable myVar;", "v myVar;", "declare myVar;"},
									CorrectAnswer: model.MultipleChoice(0),
								},
								{
									ID: 2, Kind: model.MultipleChoiceQuestion,
									Prompt:        "Which method is used to add an element to the end of an array?",
									Options:       []string{"append()", "push()", "add()", "insert()"},
									CorrectAnswer: model.MultipleChoice(1),
								},
								{
									ID: 3, Kind: model.TrueFalseQuestion,
									Prompt:        "JavaScript is a compiled programming language.",
									CorrectAnswer: model.TrueFalse(false),
								},
								{
									ID: 4, Kind: model.ShortAnswerQuestion,
									Prompt:        "What does 'DOM' stand for? (Write the full form)",
									CorrectAnswer: model.ShortAnswer("Document Object Model"),
								},
								{
									ID: 5, Kind: model.TrueFalseQuestion,
									Prompt:        "Variables declared with 'let' can be redeclared in the same scope.",
									CorrectAnswer: model.TrueFalse(false),
								},
							},
						},
					},
				},
				{
					ID:    3,
					Title: "Projects",
					Lessons: []model.Lesson{
						{
							ID: 7, Title: "Project: Todo App", DurationLabel: "120 min", Kind: model.LessonProject,
							Description: "Build a complete todo application using HTML, CSS, and JavaScript.",
							Resources: []model.Resource{
								{Name: "Project Requirements", Type: "pdf", Key: "courses/1/lessons/7/requirements.pdf"},
								{Name: "Starter Files", Type: "zip", Key: "courses/1/lessons/7/starter.zip"},
							},
						},
					},
				},
			},
		},
		{
			ID:          "2",
			Title:       "Digital Marketing Masterclass",
			Instructor:  "John Smith",
			Description: "Master Facebook Ads, Google Ads, SEO, Social Media Marketing & More",
			Category:    "Marketing",
			Level:       "Intermediate",
			Duration:    "42 hours",
			Chapters: []model.Chapter{
				{ID: 1, Title: "Foundations", Lessons: []model.Lesson{
					{ID: 1, Title: "The Marketing Funnel", DurationLabel: "25 min", Kind: model.LessonVideo},
					{ID: 2, Title: "SEO Basics", DurationLabel: "40 min", Kind: model.LessonVideo},
				}},
				{ID: 2, Title: "Paid Channels", Lessons: []model.Lesson{
					{ID: 3, Title: "Google Ads", DurationLabel: "50 min", Kind: model.LessonVideo},
					{ID: 4, Title: "Channel Check", DurationLabel: "10 min", Kind: model.LessonQuiz, Quiz: []model.Question{
						{ID: 1, Kind: model.TrueFalseQuestion, Prompt: "SEO traffic is paid traffic.", CorrectAnswer: model.TrueFalse(false)},
						{ID: 2, Kind: model.ShortAnswerQuestion, Prompt: "What does CTR stand for?", CorrectAnswer: model.ShortAnswer("Click-through rate")},
					}},
				}},
			},
		},
		{
			ID:          "3",
			Title:       "UI/UX Design Complete Course",
			Instructor:  "Sarah Wilson",
			Description: "Learn Figma, Adobe XD, Design Thinking, and User Experience Design",
			Category:    "Design",
			Level:       "Beginner",
			Duration:    "38 hours",
			Chapters: []model.Chapter{
				{ID: 1, Title: "Design Thinking", Lessons: []model.Lesson{
					{ID: 1, Title: "Empathize and Define", DurationLabel: "30 min", Kind: model.LessonVideo},
					{ID: 2, Title: "Wireframing in Figma", DurationLabel: "55 min", Kind: model.LessonProject},
				}},
			},
		},
		{
			ID:          "4",
			Title:       "Advanced React Development",
			Instructor:  "Mark Thompson",
			Description: "Deep dive into React hooks, context, performance optimization and more",
			Category:    "Programming",
			Level:       "Advanced",
			Duration:    "28 hours",
			Chapters: []model.Chapter{
				{ID: 1, Title: "Hooks", Lessons: []model.Lesson{
					{ID: 1, Title: "useEffect in Depth", DurationLabel: "45 min", Kind: model.LessonVideo},
					{ID: 2, Title: "Custom Hooks", DurationLabel: "35 min", Kind: model.LessonVideo},
					{ID: 3, Title: "Hooks Quiz", DurationLabel: "10 min", Kind: model.LessonQuiz, Quiz: []model.Question{
						{ID: 1, Kind: model.MultipleChoiceQuestion, Prompt: "Which hook memoizes a computed value?", Options: []string{"useMemo", "useRef", "useId"}, CorrectAnswer: model.MultipleChoice(0)},
					}},
				}},
			},
		},
		{
			ID:          "5",
			Title:       "Content Marketing Strategy",
			Instructor:  "Lisa Chen",
			Description: "Create compelling content that converts and builds brand awareness",
			Category:    "Marketing",
			Level:       "Intermediate",
			Duration:    "25 hours",
			Chapters: []model.Chapter{
				{ID: 1, Title: "Strategy", Lessons: []model.Lesson{
					{ID: 1, Title: "Audience Research", DurationLabel: "30 min", Kind: model.LessonVideo},
					{ID: 2, Title: "Editorial Calendar", DurationLabel: "45 min", Kind: model.LessonProject},
				}},
			},
		},
		{
			ID:          "6",
			Title:       "Graphic Design Fundamentals",
			Instructor:  "David Rodriguez",
			Description: "Master the principles of design, typography, and visual communication",
			Category:    "Design",
			Level:       "Beginner",
			Duration:    "35 hours",
			Chapters: []model.Chapter{
				{ID: 1, Title: "Principles", Lessons: []model.Lesson{
					{ID: 1, Title: "Typography", DurationLabel: "40 min", Kind: model.LessonVideo},
					{ID: 2, Title: "Color Theory", DurationLabel: "35 min", Kind: model.LessonVideo},
				}},
			},
		},
	}
}
