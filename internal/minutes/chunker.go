package minutes

import "strings"

// chunkTranscript splits a transcript into word-bounded chunks so very long
// meetings stay inside the model context window.
func chunkTranscript(transcript string, maxWords int) []string {
	words := strings.Fields(transcript)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(words); i += maxWords {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}

	return chunks
}

func countWords(s string) int {
	return len(strings.Fields(s))
}
