package dailyjob

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"codeberg.org/harudiary/server/internal/diary"
	"codeberg.org/harudiary/server/internal/refine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeText struct {
	responses map[string]string // substring of prompt -> response
	err       error
	calls     []string
}

func (f *fakeText) Generate(ctx context.Context, prompt string, params refine.GenerationParams) (string, error) {
	f.calls = append(f.calls, prompt)

	if f.err != nil {
		return "", f.err
	}

	for key, resp := range f.responses {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}

	return "", errors.New("no canned response for prompt")
}

type fakeImage struct {
	result string
	err    error
	calls  int
}

func (f *fakeImage) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.result, f.err
}

type fakeWriter struct {
	entries []diary.Entry
	err     error
}

func (f *fakeWriter) Insert(ctx context.Context, userID, content, imageURL, prompt string) (*diary.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}

	entry := diary.Entry{
		ID:        "entry-1",
		UserID:    userID,
		Content:   content,
		ImageURL:  imageURL,
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
	}
	f.entries = append(f.entries, entry)

	return &entry, nil
}

func newTestJob(text *fakeText, image *fakeImage, writer *fakeWriter) *Job {
	job := New(text, image, writer, "bot-user")
	job.now = func() time.Time { return time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC) }
	job.pick = func(n int) int { return 2 } // Rainy

	return job
}

func cannedText() *fakeText {
	return &fakeText{responses: map[string]string{
		"diary bot":            "오늘은 창가에서 비를 구경했다. 따뜻한 코코아도 마셨다.",
		"English image prompt": "a cute illustrated character watching rain by a window",
		"cute title":           `"비 오는 날"`,
	}}
}

func TestRun_CommitsGeneratedEntry(t *testing.T) {
	text := cannedText()
	image := &fakeImage{result: "data:image/png;base64,aGk="}
	writer := &fakeWriter{}

	summary, err := newTestJob(text, image, writer).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "비 오는 날", summary.Title, "wrapping quotes must be stripped")
	assert.Equal(t, "2025-06-01", summary.Date)

	require.Len(t, writer.entries, 1)
	entry := writer.entries[0]
	assert.Equal(t, "bot-user", entry.UserID)
	assert.Equal(t, "비 오는 날\n오늘은 창가에서 비를 구경했다. 따뜻한 코코아도 마셨다.", entry.Content)
	assert.Equal(t, "data:image/png;base64,aGk=", entry.ImageURL)
	assert.Equal(t, "a cute illustrated character watching rain by a window", entry.Prompt)

	// diary body, image prompt, title: three text calls, one image call
	assert.Len(t, text.calls, 3)
	assert.Equal(t, 1, image.calls)
	assert.Contains(t, text.calls[0], "Weather: Rainy")
	assert.Contains(t, text.calls[0], "Today (2025-06-01)")
}

func TestRun_IgnoresExistingEntriesForTheDay(t *testing.T) {
	// the bot already wrote today; the job has no quota gate and must
	// happily commit a second entry
	writer := &fakeWriter{}
	_, err := writer.Insert(context.Background(), "bot-user", "아침 일기\n이미 있음", "data:,x", "p")
	require.NoError(t, err)

	summary, err := newTestJob(cannedText(), &fakeImage{result: "data:,y"}, writer).Run(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, summary)
	assert.Len(t, writer.entries, 2)
}

func TestRun_TextFailureAbortsBeforeImage(t *testing.T) {
	image := &fakeImage{result: "data:,x"}
	writer := &fakeWriter{}
	text := &fakeText{err: errors.New("all tiers down")}

	_, err := newTestJob(text, image, writer).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "diary content")
	assert.Equal(t, 0, image.calls)
	assert.Empty(t, writer.entries)
}

func TestRun_ImageFailureAbortsWithoutCommit(t *testing.T) {
	writer := &fakeWriter{}
	image := &fakeImage{err: errors.New("provider rejected")}

	_, err := newTestJob(cannedText(), image, writer).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "image")
	assert.Empty(t, writer.entries, "no partial commit on failure")
}

func TestRun_PersistenceFailureSurfaces(t *testing.T) {
	writer := &fakeWriter{err: errors.New("connection refused")}

	_, err := newTestJob(cannedText(), &fakeImage{result: "data:,x"}, writer).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save diary entry")
}

func TestRun_MissingBotUser(t *testing.T) {
	job := New(cannedText(), &fakeImage{}, &fakeWriter{}, "")

	_, err := job.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot user id")
}

func TestSanitizeTitle(t *testing.T) {
	assert.Equal(t, "비 오는 날", sanitizeTitle(` "비 오는 날" `))
	assert.Equal(t, fallbackTitle, sanitizeTitle(`""`))
	assert.Equal(t, fallbackTitle, sanitizeTitle("   "))
}
