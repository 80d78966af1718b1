// Package skills classifies free-text skill names into hard skills, soft
// skills, and tools. The pattern lists live here as data so they can be
// extended and tested independently of any UI or service.
package skills

import (
	"regexp"
	"strings"

	"seekers/internal/domain"
)

// toolNames matches product and tooling names commonly listed on resumes.
var toolNames = []string{
	"figma", "adobe", "photoshop", "illustrator", "xd", "sketch", "miro",
	"trello", "jira", "asana", "notion", "slack", "git", "github", "gitlab",
	"vscode", "vs code", "postman", "docker", "kubernetes", "aws", "azure",
	"gcp", "excel", "word", "powerpoint", "canva", "invision", "zeplin",
	"abstract", "principle", "framer", "webflow", "wordpress", "shopify",
	"firebase", "mongodb", "mysql", "postgresql", "redis", "jenkins",
	"terraform", "ansible", "linux", "windows", "macos",
}

// softSkillNames matches interpersonal and behavioral skills. The `.?` gaps
// tolerate both "problem solving" and "problem-solving".
var softSkillNames = []string{
	"communication", "problem.?solving", "critical.?thinking",
	"creative.?thinking", "leadership", "teamwork", "collaboration",
	"collaborative", "adaptable", "adaptive", "flexible", "time.?management",
	"organization", "organized", "interpersonal", "emotional.?intelligence",
	"conflict.?resolution", "decision.?making", "negotiation", "presentation",
	"public.?speaking", "mentoring", "coaching", "empathy", "patience",
	"motivation", "initiative", "self.?motivated", "detail.?oriented",
	"analytical", "fast.?learner", "quick.?learner", "multitasking",
	"stress.?management", "work.?ethic", "positive.?attitude", "open.?minded",
	"receptive", "proactive", "reliable", "dependable", "accountable",
	"trustworthy", "honest", "integrity", "respectful", "professional",
	"punctual", "diligent", "perseverance", "resilience", "curious",
	"creativity", "innovation", "strategic.?thinking", "planning",
	"prioritization",
}

var (
	toolPattern      = compileWordList(toolNames)
	softSkillPattern = compileWordList(softSkillNames)
)

func compileWordList(words []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
}

// Classify maps a free-text skill name to a skill category. Tools are
// recognized first, then soft skills; everything else defaults to hard skill.
func Classify(name string) domain.SkillCategory {
	name = strings.TrimSpace(name)
	switch {
	case toolPattern.MatchString(name):
		return domain.SkillTool
	case softSkillPattern.MatchString(name):
		return domain.SkillSoft
	default:
		return domain.SkillHard
	}
}
