package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += int(randomIntn(maxLen - minLen + 1))
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

// RandomEmail returns a random address in the example.com domain.
func RandomEmail() string {
	return strings.ToLower(RandomASCIIString(6, 12)) + "@example.com"
}

// RandomOrderDraft returns a draft with random but valid descriptive fields.
func RandomOrderDraft() model.OrderDraft {
	return model.OrderDraft{
		CustomerName:  RandomASCIIString(3, 10),
		CustomerEmail: RandomEmail(),
		WebsiteType:   websiteTypes[randomIntn(len(websiteTypes))],
		Requirements:  RandomASCIIString(10, 40),
	}
}

var websiteTypes = []string{"Landing Page", "Blog", "E-commerce", "Portfolio", "Corporate"}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
