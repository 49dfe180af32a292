package intelligence

import "strings"

// CannedQuestion is a pre-written question used when the model repeats
// itself or fails.
type CannedQuestion struct {
	Question    string
	Suggestions []string
}

// Deduplicator keeps a wizard from asking the same question twice. Matching
// is exact and case-sensitive: a reworded repeat is not caught.
type Deduplicator struct {
	Pool    []CannedQuestion
	Default CannedQuestion
}

// Next accepts candidate unless it is blank or exactly matches a prior
// question, in which case a canned replacement is returned and replaced is true.
func (d Deduplicator) Next(candidate string, prior []string) (CannedQuestion, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate != "" && !contains(prior, candidate) {
		return CannedQuestion{Question: candidate}, false
	}
	return d.Fallback(prior), true
}

// Fallback returns the first pool question not yet asked, or Default once
// the pool is exhausted.
// Lookup returns the canned entry for question, if it is one.
func (d Deduplicator) Lookup(question string) (CannedQuestion, bool) {
	for _, c := range d.Pool {
		if c.Question == question {
			return c, true
		}
	}
	if d.Default.Question == question {
		return d.Default, true
	}
	return CannedQuestion{}, false
}

func (d Deduplicator) Fallback(prior []string) CannedQuestion {
	for _, q := range d.Pool {
		if !contains(prior, q.Question) {
			return q
		}
	}
	return d.Default
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ToneDeduplicator carries the canned tone-of-voice questions.
var ToneDeduplicator = Deduplicator{
	Pool: []CannedQuestion{
		{"How would you like customers to feel after interacting with your brand?",
			[]string{"Confident and reassured", "Inspired and energized", "Cared for and understood", "Entertained and delighted"}},
		{"If your brand were a person, how would you describe their personality?",
			[]string{"A wise mentor", "A bold adventurer", "A friendly neighbor", "A playful entertainer"}},
		{"How formal or casual should your brand sound?",
			[]string{"Formal and polished", "Professional but warm", "Casual and conversational", "Playful and irreverent"}},
		{"Which words should never be used to describe your brand?",
			[]string{"Boring", "Pushy", "Cold", "Complicated"}},
		{"Which brands do you admire for the way they communicate?",
			[]string{"Apple", "Patagonia", "Mailchimp", "Innocent Drinks"}},
		{"How should your brand use humor?",
			[]string{"Never, keep it serious", "Light touches only", "Witty and clever", "Bold and cheeky"}},
		{"What is the one thing you want people to remember about you?",
			[]string{"Our expertise", "Our reliability", "Our creativity", "Our care for customers"}},
		{"How do you want to talk about your competitors?",
			[]string{"Never mention them", "Respectfully", "Confident contrast", "Playful challenge"}},
		{"Which emotions should your marketing avoid?",
			[]string{"Fear", "Guilt", "Pressure", "Confusion"}},
		{"How technical should your language be for your audience?",
			[]string{"Expert-level detail", "Some detail, well explained", "Plain language only"}},
	},
	Default: CannedQuestion{"What else should we know about how your brand should sound?",
		[]string{"Keep it simple", "Make it more energetic", "Make it sound more premium"}},
}

// MessageDeduplicator carries the canned core-message questions.
var MessageDeduplicator = Deduplicator{
	Pool: []CannedQuestion{
		{"Who is the ideal customer for your product or service?",
			[]string{"Small business owners", "Busy parents", "Enterprise IT teams", "First-time buyers"}},
		{"What problem do you solve for your customers?",
			[]string{"Saving them time", "Cutting their costs", "Reducing stress", "Helping them grow"}},
		{"What makes you different from the alternatives?",
			[]string{"Better quality", "Lower price", "Faster service", "A unique approach"}},
		{"What result do customers get after working with you?",
			[]string{"More revenue", "Peace of mind", "Better health", "More free time"}},
		{"Why should someone choose you today rather than later?",
			[]string{"Limited availability", "Costs rise with delay", "Immediate results"}},
		{"What do customers most often say they love about you?",
			[]string{"Friendly service", "Reliability", "Attention to detail", "Great value"}},
		{"Which objection do you hear most often before people buy?",
			[]string{"It costs too much", "I don't have time", "I'm not sure it works", "I can do it myself"}},
		{"What proof can you offer that your solution works?",
			[]string{"Customer reviews", "Case studies", "Certifications", "Years of experience"}},
		{"What feeling should your message leave people with?",
			[]string{"Excited", "Reassured", "Curious", "Understood"}},
		{"What do you want people to do after reading your message?",
			[]string{"Book a call", "Buy now", "Sign up for a trial", "Visit the website"}},
	},
	Default: CannedQuestion{"Is there anything else your core message should capture?",
		[]string{"It's complete", "Make it shorter", "Make it bolder"}},
}

const (
	minSuggestions = 3
	maxSuggestions = 4
)

var genericSuggestions = []string{"I'm not sure yet", "Somewhere in between", "Let me explain in my own words"}

// normalizeSuggestions trims, drops blanks and duplicates, pads from pad
// (then generic answers) to at least three entries, and caps at four.
func normalizeSuggestions(got, pad []string) []string {
	out := make([]string, 0, maxSuggestions)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || contains(out, s) || len(out) >= maxSuggestions {
			return
		}
		out = append(out, s)
	}
	for _, s := range got {
		add(s)
	}
	for _, s := range append(append([]string{}, pad...), genericSuggestions...) {
		if len(out) >= minSuggestions {
			break
		}
		add(s)
	}
	return out
}
