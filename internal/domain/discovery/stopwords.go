package discovery

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "across", "after", "again", "against", "all", "almost", "also",
		"am", "among", "an", "and", "any", "are", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "could", "did", "do", "does",
		"doing", "done", "down", "during", "each", "either", "etc", "ever", "every", "few", "for",
		"from", "further", "had", "has", "have", "having", "he", "her", "here", "hers", "him",
		"his", "how", "however", "i", "if", "in", "into", "is", "it", "its", "itself", "just",
		"least", "less", "made", "make", "many", "may", "me", "might", "more", "most", "much",
		"must", "my", "myself", "near", "neither", "no", "nor", "not", "now", "of", "off", "on",
		"once", "one", "only", "or", "other", "our", "ours", "out", "over", "own", "per", "same",
		"she", "should", "since", "so", "some", "such", "than", "that", "the", "their", "them",
		"then", "there", "these", "they", "this", "those", "through", "to", "too", "under",
		"until", "up", "upon", "us", "used", "using", "very", "via", "was", "we", "well", "were",
		"what", "when", "where", "whether", "which", "while", "who", "whom", "why", "will",
		"with", "within", "without", "would", "yet", "you", "your", "yours",
	} {
		stopwords[w] = struct{}{}
	}
}

func isStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}
