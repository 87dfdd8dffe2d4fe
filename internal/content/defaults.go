package content

// DefaultSections is the built-in sketchbook, used when no content
// directory is configured.
func DefaultSections() []Section {
	return []Section{
		{
			ID: "hero", Title: "Hira Binta Usman", Kind: KindHero, Order: 0,
			Subtitle: "Pencil Artist & Illustrator",
			Body:     "Every line tells a story, every shadow holds a secret.\n\n*Open the sketchbook.*",
		},
		{
			ID: "cover", Title: "Sketchbook", Kind: KindCover, Order: 1,
			Subtitle: "Hira Binta Usman",
			Body:     "Studies, portraits and places, drawn by hand.",
		},
		{
			ID: "about", Title: "About the artist", Kind: KindProse, Order: 2,
			Body: "I draw the quiet moments: light on skin, the weight of a gaze, the texture of a place.\n\n" +
				"My process starts with observation, then graphite, then refinement. No shortcuts. " +
				"Every piece is built line by line, mistake by mistake, until it feels true.",
		},
		{
			ID: "tools", Title: "Tools of the trade", Kind: KindList, Order: 3,
			Body: "Each grade has a job. I switch often, build tone slowly, and erase a lot.",
			Items: []Item{
				{Label: "HB", Detail: "Light sketching & outlines"},
				{Label: "2B", Detail: "General shading & mid-tones"},
				{Label: "4B", Detail: "Deep shadows & dark areas"},
				{Label: "6B", Detail: "Rich blacks & contrast"},
				{Label: "8B", Detail: "Velvet blacks & blends"},
			},
		},
		{
			ID: "work", Title: "Selected work", Kind: KindGallery, Order: 4,
			Body: "Portraits, places, and imagined scenes.",
			Items: []Item{
				{Label: "Portrait Study", Value: "graphite", Image: "/assets/work_thumb_01.jpg",
					Detail: "A detailed study of light and shadow on skin, focusing on the subtle transitions in the eye area."},
				{Label: "Old Library", Value: "ink + wash", Image: "/assets/work_thumb_02.jpg",
					Detail: "Architectural illustration capturing the quiet atmosphere of a historic reading room."},
				{Label: "Character Concept", Value: "pencil", Image: "/assets/work_thumb_03.jpg",
					Detail: "Fantasy character design exploring elven features and flowing hair dynamics."},
				{Label: "Still Life", Value: "graphite", Image: "/assets/work_thumb_04.jpg",
					Detail: "Classical still life composition studying texture, reflection, and drapery."},
			},
		},
		{
			ID: "work-detail", Title: "Inside a portrait", Kind: KindProcess, Order: 5,
			Body: "This portrait began as a 10-minute gesture. I kept returning to the eyes, " +
				"until the rest of the face agreed to come alive.",
			Items: []Item{
				{Label: "Gesture", Image: "/assets/process_sketch_01.jpg"},
				{Label: "Blocking", Image: "/assets/process_sketch_02.jpg"},
				{Label: "Refining", Image: "/assets/process_sketch_03.jpg"},
			},
		},
		{
			ID: "theater", Title: "Process", Kind: KindTheater, Order: 6, Dark: true,
			Subtitle: "Portrait from blank page",
			Body:     "A time-lapse from blank page to finished portrait, with the decisions I make along the way.",
			Items: []Item{
				{Label: "Time-lapse", Value: "/assets/process.mp4", Image: "/assets/video_thumb.jpg"},
			},
		},
		{
			ID: "timeline", Title: "Timeline", Kind: KindTimeline, Order: 7,
			Body: "Every style I love started as a mistake I kept.",
			Items: []Item{
				{Label: "2016", Detail: "First portraits", Image: "/assets/timeline_2016.jpg"},
				{Label: "2018", Detail: "Ink experiments", Image: "/assets/timeline_2018.jpg"},
				{Label: "2020", Detail: "Commission work", Image: "/assets/timeline_2020.jpg"},
				{Label: "2022", Detail: "Mixed media", Image: "/assets/timeline_2022.jpg"},
				{Label: "2024", Detail: "Teaching", Image: "/assets/timeline_2024.jpg"},
			},
		},
		{
			ID: "connect", Title: "Connect", Kind: KindConnect, Order: 8,
			Body: "Have a project in mind? Or just want to say hello? Drop me a note.",
		},
		{
			ID: "testimonials", Title: "Kind words", Kind: KindTestimonials, Order: 9,
			Body: "Words from those who've shared this creative journey.",
			Items: []Item{
				{Label: "Sarah M.", Detail: "The portrait felt more real than the photo."},
				{Label: "David K.", Detail: "She turned my messy idea into a world."},
				{Label: "Maria L.", Detail: "Patient, precise, and kind. Working with Hira was a joy."},
			},
		},
		{
			ID: "contact", Title: "Thanks for visiting.", Kind: KindContact, Order: 10,
			Subtitle: "Keep creating. Keep sketching.",
			Body:     "[hello@hirabintausman.art](mailto:hello@hirabintausman.art)",
		},
	}
}
