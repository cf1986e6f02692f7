package document

import "github.com/khrees2412/cvgen/pkg/models"

// Sample returns the built-in demonstration CV.
func Sample() models.Document {
	return models.Document{
		PersonalInfo: models.PersonalInfo{
			FullName: "John Doe",
			Email:    "john.doe@example.com",
			Phone:    "+1 (555) 123-4567",
			Address:  "123 Main St, San Francisco, CA 94105",
			Website:  "https://johndoe.com",
			LinkedIn: "https://linkedin.com/in/johndoe",
			GitHub:   "https://github.com/johndoe",
			Summary: "Experienced full-stack developer with 5+ years of experience building scalable web applications. " +
				"Passionate about clean code, user experience, and emerging technologies.",
		},
		Experience: []models.Experience{
			{
				ID:           "1",
				Company:      "Tech Corp",
				Position:     "Senior Full-Stack Developer",
				StartDate:    "2022-01",
				IsCurrentJob: true,
				Description: "Led development of multiple web applications using React, Node.js, and AWS. " +
					"Mentored junior developers and improved team productivity by 30%.",
				Location: "San Francisco, CA",
			},
			{
				ID:        "2",
				Company:   "StartupXYZ",
				Position:  "Frontend Developer",
				StartDate: "2020-06",
				EndDate:   "2021-12",
				Description: "Developed responsive web applications using React and TypeScript. " +
					"Collaborated with design team to implement pixel-perfect UI components.",
				Location: "Remote",
			},
		},
		Education: []models.Education{
			{
				ID:          "1",
				Institution: "University of California, Berkeley",
				Degree:      "Bachelor of Science",
				Field:       "Computer Science",
				StartDate:   "2016-08",
				EndDate:     "2020-05",
				GPA:         "3.8/4.0",
				Location:    "Berkeley, CA",
			},
		},
		Skills: []models.Skill{
			{ID: "1", Name: "JavaScript", Level: models.SkillExpert},
			{ID: "2", Name: "React", Level: models.SkillExpert},
			{ID: "3", Name: "Node.js", Level: models.SkillAdvanced},
			{ID: "4", Name: "Python", Level: models.SkillIntermediate},
			{ID: "5", Name: "AWS", Level: models.SkillIntermediate},
			{ID: "6", Name: "PostgreSQL", Level: models.SkillAdvanced},
		},
		Projects: []models.Project{
			{
				ID:   "1",
				Name: "E-commerce Platform",
				Description: "Built a full-stack e-commerce platform with React, Node.js, and PostgreSQL. " +
					"Implemented payment processing, inventory management, and admin dashboard.",
				Technologies: []string{"React", "Node.js", "PostgreSQL", "Stripe", "AWS"},
				URL:          "https://myecommerce.com",
				GitHub:       "https://github.com/johndoe/ecommerce",
			},
			{
				ID:           "2",
				Name:         "Task Management App",
				Description:  "Developed a collaborative task management application with real-time updates using Socket.io and React.",
				Technologies: []string{"React", "Socket.io", "Express", "MongoDB"},
				URL:          "https://mytasks.com",
				GitHub:       "https://github.com/johndoe/taskapp",
			},
		},
		Languages: []models.Language{
			{ID: "1", Name: "English", Proficiency: models.ProficiencyNative},
			{ID: "2", Name: "Spanish", Proficiency: models.ProficiencyConversational},
			{ID: "3", Name: "French", Proficiency: models.ProficiencyBasic},
		},
	}
}
