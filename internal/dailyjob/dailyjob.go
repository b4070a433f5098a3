package dailyjob

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"codeberg.org/harudiary/server/internal/diary"
	"codeberg.org/harudiary/server/internal/logger"
	"codeberg.org/harudiary/server/internal/refine"
)

// weather labels picked uniformly at random for the synthesized entry
var weathers = []string{"Sunny", "Cloudy", "Rainy", "Snowy", "Windy"}

// used when the model fails to produce a usable title
const fallbackTitle = "오늘의 일기"

// fixed parameters for the job's free-form generation calls
var jobParams = refine.GenerationParams{Temperature: 0.7, MaxOutputTokens: 512}

// creates the daily diary job for the given bot identity
func New(text TextGenerator, image ImageGenerator, repo EntryWriter, botUserID string) *Job {
	return &Job{
		text:      text,
		image:     image,
		repo:      repo,
		botUserID: botUserID,
		now:       time.Now,
		pick:      rand.Intn,
	}
}

// generates and commits one entry; any failure at any stage aborts the whole
// run and nothing is committed
func (j *Job) Run(ctx context.Context) (*Summary, error) {
	if j.botUserID == "" {
		return nil, fmt.Errorf("bot user id is not configured")
	}

	weather := weathers[j.pick(len(weathers))]
	date := j.now().UTC().Format("2006-01-02")

	logger.Info("daily diary job started", "date", date, "weather", weather)

	body, err := j.text.Generate(ctx, buildDiaryPrompt(date, weather), jobParams)
	if err != nil {
		return nil, fmt.Errorf("failed to generate diary content: %w", err)
	}

	imagePrompt, err := j.text.Generate(ctx, buildImagePromptInstruction(body), jobParams)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image prompt: %w", err)
	}

	imageURL, err := j.image.Generate(ctx, imagePrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	title, err := j.text.Generate(ctx, buildTitlePrompt(body), jobParams)
	if err != nil {
		return nil, fmt.Errorf("failed to generate title: %w", err)
	}

	safeTitle := sanitizeTitle(title)

	entry, err := j.repo.Insert(ctx, j.botUserID, diary.JoinContent(safeTitle, body), imageURL, imagePrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to save diary entry: %w", err)
	}

	logger.Info("daily diary job finished", "entry_id", entry.ID, "title", safeTitle)

	return &Summary{Title: safeTitle, Date: date}, nil
}

func buildDiaryPrompt(date, weather string) string {
	return fmt.Sprintf(`You are a cute, sentimental AI diary bot.
Write a short daily diary entry in Korean (Hangul).

Requirements:
- Date: Today (%s)
- Weather: %s
- Tone: Warm, nostalgic, innocent, like a fairytale or a child's diary.
- Length: 3-5 sentences.
- Topic: Pick a random daily life topic (e.g., watching flowers, baking cookies, reading a book, meeting a cat).
- Output: ONLY the diary content string. No title, no date prefix.`, date, weather)
}

func buildImagePromptInstruction(body string) string {
	return fmt.Sprintf(`Convert this Korean diary entry into a detailed English image prompt for an AI image generator.
Style: Crayon drawing, colored pencil, hand-drawn, cute, warm.
Diary: "%s"
Output: ONLY the English prompt.`, body)
}

func buildTitlePrompt(body string) string {
	return fmt.Sprintf(`Extract a very short, cute title (max 10 chars) from this diary: "%s". Output ONLY the title in Korean.`, body)
}

// strips quote characters the model tends to wrap titles in and falls back to
// a fixed title when nothing usable remains
func sanitizeTitle(title string) string {
	cleaned := strings.NewReplacer(`'`, "", `"`, "").Replace(title)
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return fallbackTitle
	}

	return cleaned
}
