// Package content provides the portfolio tables shown on the page: the
// built-in defaults and optional overrides loaded from a TOML or YAML file.
package content

import "github.com/verte-zerg/folio/internal/model"

// Version is the content version printed in the footer.
const Version = "1.0.0"

// Default returns the built-in portfolio. Each call returns fresh slices.
func Default() model.Portfolio {
	return model.Portfolio{
		Profile:   defaultProfile(),
		Skills:    defaultSkills(),
		Projects:  defaultProjects(),
		Education: defaultEducation(),
		Version:   Version,
	}
}

func defaultProfile() model.Profile {
	return model.Profile{
		Name:     "RABEMALALA Hionontsoa",
		Nickname: "Hinontsoa",
		Role:     "Junior Web Developer",
		Greeting: "Welcome to my portfolio",
		Tagline:  "Passionate about web development and building modern applications.",
		About: []model.AboutBlock{
			{
				Title: "Who I am",
				Text: "Freelance web developer and computer science student, focused on building " +
					"**modern**, fast websites centred on the user experience.",
			},
			{
				Title: "My approach",
				Text: "I help clients build tailored digital solutions that combine careful design, " +
					"performance and recent technologies. Rigorous, autonomous and results-driven, " +
					"I deliver reliable, optimised projects fitted to each client's needs.",
			},
			{
				Title: "My goal",
				Text:  "Bring real added value through effective, scalable and professional web solutions.",
			},
		},
		Email: "hionontsoa1707@gmail.com",
		Phone: "+261 38 66 455 48",
		Links: []model.Link{
			{Label: "WhatsApp", URL: "https://wa.me/261386645548"},
			{Label: "LinkedIn", URL: "https://linkedin.com/in/votre-profil"},
			{Label: "GitHub", URL: "https://github.com/votre-username"},
			{Label: "Resume", URL: "https://cvdesignr.com/p/69687eeeb8d08?hl=fr_FR"},
		},
		Pitch: "Let's work together! I am available for freelance opportunities and interesting projects.",
	}
}

func defaultSkills() []model.SkillEntry {
	return []model.SkillEntry{
		{Name: "HTML", Level: 90, Category: model.CategoryLanguage, Tag: "orange"},
		{Name: "CSS", Level: 85, Category: model.CategoryLanguage, Tag: "blue"},
		{Name: "JavaScript", Level: 80, Category: model.CategoryLanguage, Tag: "yellow"},
		{Name: "TypeScript", Level: 75, Category: model.CategoryLanguage, Tag: "blue"},
		{Name: "PHP", Level: 70, Category: model.CategoryLanguage, Tag: "purple"},
		{Name: "Python", Level: 75, Category: model.CategoryLanguage, Tag: "green"},
		{Name: "C#", Level: 65, Category: model.CategoryLanguage, Tag: "purple"},

		{Name: "React", Level: 80, Category: model.CategoryFramework, Tag: "cyan"},
		{Name: "Tailwind CSS", Level: 85, Category: model.CategoryFramework, Tag: "teal"},
		{Name: "Django", Level: 70, Category: model.CategoryFramework, Tag: "green"},
		{Name: "Figma", Level: 75, Category: model.CategoryFramework, Tag: "pink"},
		{Name: "Git", Level: 80, Category: model.CategoryFramework, Tag: "orange"},

		{Name: "UI/UX", Level: 75, Category: model.CategoryOther, Tag: "indigo"},
		{Name: "Databases", Level: 70, Category: model.CategoryOther, Tag: "blue"},
		{Name: "Responsive Design", Level: 85, Category: model.CategoryOther, Tag: "purple"},
	}
}

func defaultProjects() []model.ProjectEntry {
	return []model.ProjectEntry{
		{
			Title:        "Modern showcase site",
			Description:  "An elegant, responsive showcase website with modern animations.",
			Technologies: []string{"HTML", "CSS", "JavaScript"},
			Tag:          "blue",
		},
		{
			Title:        "Management application",
			Description:  "A simple management system with an intuitive interface.",
			Technologies: []string{"PHP", "MySQL", "Bootstrap"},
			Tag:          "purple",
		},
		{
			Title:        "React dashboard",
			Description:  "A modern administration interface with interactive charts.",
			Technologies: []string{"React", "TypeScript", "Tailwind CSS"},
			Tag:          "orange",
		},
	}
}

func defaultEducation() []model.EducationEntry {
	return []model.EducationEntry{
		{
			Degree:      "Bachelor (L3) in Business Computing / Software Engineering",
			Institution: "University / Graduate School",
			Period:      "2023 - 2026",
			Summary:     "Complete training in software development, databases, networking and IT project management.",
		},
	}
}
