package minutes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const momPrompt = `You are an expert meeting assistant. Analyze the following meeting transcript and generate a structured Minutes of Meeting (MOM).

TRANSCRIPT:
%s

Please extract and format the following information in JSON format:

1. "summary": A comprehensive 3-5 sentence overview of what was discussed
2. "key_points": Array of main discussion points (5-8 bullet points)
3. "decisions": Array of decisions made, each with:
   - decision: The decision text
   - made_by: Who made the decision (if mentioned, otherwise "Team")
   - timestamp: Approximate time in transcript (if possible)
4. "action_items": Array of tasks, each with:
   - task: What needs to be done
   - owner: Who is responsible (if mentioned, otherwise "Unassigned")
   - deadline: Deadline if mentioned (otherwise "Not specified")
   - priority: high/medium/low based on context
5. "questions": Array of unresolved questions or concerns raised
6. "next_steps": What should happen after this meeting
7. "attendees": List of people mentioned in the meeting (if identifiable)
8. "topics_discussed": Main topics/agenda items covered

Return ONLY valid JSON, no additional text.`

const chunkPrompt = `Analyze this portion of a meeting transcript and extract key information.

TRANSCRIPT SEGMENT:
%s

Extract:
1. Key points discussed in this segment
2. Any decisions made
3. Any action items assigned
4. Any questions raised

Return as JSON with keys: key_points, decisions, action_items, questions`

const mergePrompt = `Based on the extracted information from a long meeting, create a comprehensive MOM.

EXTRACTED INFORMATION:
%s

Create a final MOM with:
1. summary: 3-5 sentence overall summary
2. key_points: Top 8-10 most important points
3. decisions: All decisions (remove duplicates)
4. action_items: All action items (remove duplicates)
5. questions: All unresolved questions
6. next_steps: Recommended next steps
7. attendees: People identified across segments
8. topics_discussed: Main topics covered

Return valid JSON only.`

// chunkExtract is the per-segment extraction result for long meetings.
type chunkExtract struct {
	KeyPoints   []string     `json:"key_points"`
	Decisions   []Decision   `json:"decisions"`
	ActionItems []ActionItem `json:"action_items"`
	Questions   []string     `json:"questions"`
}

// Generate produces Minutes from a transcript. Transcripts over the chunk
// threshold go through a per-segment extraction pass followed by a merge
// call; shorter ones are handled with a single prompt.
func (g *implGenerator) Generate(ctx context.Context, transcript string, durationSeconds float64) (*Minutes, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, fmt.Errorf("transcript is empty")
	}

	wordCount := countWords(transcript)
	g.logger.Info(ctx, "Generating minutes: %d words, %.1fs of audio", wordCount, durationSeconds)

	var (
		m   *Minutes
		err error
	)
	if wordCount > g.cfg.ChunkThreshold {
		g.logger.Info(ctx, "Long transcript detected (%d words), using chunked strategy", wordCount)
		m, err = g.generateChunked(ctx, transcript)
	} else {
		m, err = g.generateNormal(ctx, transcript)
	}
	if err != nil {
		return nil, err
	}

	m.Metadata.GeneratedAt = time.Now()
	m.Metadata.Model = g.cfg.Model
	m.Metadata.WordCount = wordCount
	m.Metadata.DurationSeconds = durationSeconds

	return m, nil
}

func (g *implGenerator) generateNormal(ctx context.Context, transcript string) (*Minutes, error) {
	raw, err := g.callModel(ctx, fmt.Sprintf(momPrompt, transcript))
	if err != nil {
		return nil, fmt.Errorf("generate minutes: %w", err)
	}

	var m Minutes
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("parse minutes response: %w", err)
	}

	m.Metadata.ProcessingMethod = "normal"
	return &m, nil
}

func (g *implGenerator) generateChunked(ctx context.Context, transcript string) (*Minutes, error) {
	chunks := chunkTranscript(transcript, g.cfg.ChunkWords)
	g.logger.Info(ctx, "Split transcript into %d chunks", len(chunks))

	var combined chunkExtract
	processed := 0

	for i, chunk := range chunks {
		g.logger.Info(ctx, "Processing chunk %d/%d", i+1, len(chunks))

		raw, err := g.callModel(ctx, fmt.Sprintf(chunkPrompt, chunk))
		if err != nil {
			g.logger.Warn(ctx, "Chunk %d failed, skipping: %v", i+1, err)
			continue
		}

		var extract chunkExtract
		if err := json.Unmarshal([]byte(raw), &extract); err != nil {
			g.logger.Warn(ctx, "Chunk %d returned unparseable JSON, skipping: %v", i+1, err)
			continue
		}

		combined.KeyPoints = append(combined.KeyPoints, extract.KeyPoints...)
		combined.Decisions = append(combined.Decisions, extract.Decisions...)
		combined.ActionItems = append(combined.ActionItems, extract.ActionItems...)
		combined.Questions = append(combined.Questions, extract.Questions...)
		processed++
	}

	if processed == 0 {
		return nil, fmt.Errorf("all %d transcript chunks failed", len(chunks))
	}

	extracted, err := json.Marshal(combined)
	if err != nil {
		return nil, fmt.Errorf("marshal extracted chunks: %w", err)
	}

	raw, err := g.callModel(ctx, fmt.Sprintf(mergePrompt, string(extracted)))
	if err != nil {
		return nil, fmt.Errorf("merge chunked minutes: %w", err)
	}

	var m Minutes
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("parse merged minutes: %w", err)
	}

	m.Metadata.ProcessingMethod = "chunked"
	m.Metadata.ChunksProcessed = processed
	return &m, nil
}

// callModel sends the prompt to Gemini in JSON mode and returns the raw
// response text. Rotates API keys on 429 / quota errors.
func (g *implGenerator) callModel(ctx context.Context, prompt string) (string, error) {
	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		keyIndex, key := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIndex+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from model")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGenerator) activeKey() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

func (g *implGenerator) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
