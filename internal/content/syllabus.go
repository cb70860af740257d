package content

// Syllabus lists the topics a grade covers in one subject.
type Syllabus struct {
	Literature []string
	Grammar    []string
	Lessons    []string
}

// Empty reports whether the syllabus names no topics.
func (s Syllabus) Empty() bool {
	return len(s.Literature) == 0 && len(s.Grammar) == 0 && len(s.Lessons) == 0
}

var syllabi = map[Subject]map[Grade]Syllabus{
	SubjectEnglish: {
		Grade6: {
			Literature: []string{"Neem Baba", "The Unlikely Best Friends", "The Merchant of Venice (Play)", "The Chair (Play)", "The Painted Ceiling (Poem)"},
			Grammar:    []string{"Active Passive Voice", "Conjunctions", "Prepositions", "Tenses", "Subject Verb Agreement", "Idioms", "One word Substitution"},
		},
		Grade7: {
			Literature: []string{"The School Boy", "Mrs. Packletide’s Tiger"},
			Grammar:    []string{"Verbs", "Determiners"},
		},
		Grade8: {
			Literature: []string{"As You Like It", "The Best Christmas Present"},
			Grammar:    []string{"Reported Speech", "Sentence Reordering"},
		},
	},
	SubjectFrench: {
		Grade6: {
			Grammar: []string{"Verb avoir", "Verb aller", "Prepositions", "Negation"},
			Lessons: []string{"Leçon-6 Tu es de quel pays", "Leçon-7 Le Week-end", "Lecon-8 Ma famille", "Leçon-9 Bon Anniversaire", "Lecon-10 Ma saison preferee"},
		},
		Grade7: {
			Grammar: []string{"Adjectives", "Imperative"},
			Lessons: []string{"Leçon 6: Les fêtes", "Leçon 7: La francophonie"},
		},
		Grade8: {
			Grammar: []string{"Interrogation"},
			Lessons: []string{"Leçon 8: La nouvelle génération", "Leçon 9: On prépare la fête"},
		},
	},
	SubjectHindi: {
		Grade6: {
			Literature: []string{"मैया मैं नहिं माखन खायो (सूरदास)", "हिन्द महासागर में छोटा-सा हिन्दुस्तान", "परख", "स्त्रियाँ और बिहू नृत्य", "चेतक की वीरता"},
			Grammar:    []string{"वर्ण विचार", "अव्यय-क्रिया विशेषण", "काल", "विराम चिह्न", "स्वर संधि (दीर्घ)", "वाक्य", "अशुद्धि शोधन", "समरूपी भिन्नार्थक शब्द"},
		},
		Grade7: {
			Literature: []string{"कबीर की साखियाँ"},
			Grammar:    []string{"समास", "पर्यायवाची"},
		},
		Grade8: {
			Literature: []string{"अकबरी लोटा", "सुदामा चरित"},
			Grammar:    []string{"उपसर्ग", "प्रत्यय"},
		},
	},
}

// SyllabusFor returns the topics for subject and grade, falling back to
// grade 6 when the grade has no entry.
func SyllabusFor(subject Subject, grade Grade) Syllabus {
	bySubject := syllabi[subject]
	if s, ok := bySubject[grade]; ok && !s.Empty() {
		return s
	}
	return bySubject[Grade6]
}
