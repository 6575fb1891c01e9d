package utils

import (
	rndm "math/rand"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// GenerateID creates a random lowercase alphanumeric id of length n.
func GenerateID(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Slug ---

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a lowercase URL-safe slug: runs of anything outside
// [a-z0-9] collapse to a single hyphen, leading/trailing hyphens stripped.
// Deterministic, so deriving the same title twice yields the same slug.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// --- Form Helpers ---

// SplitList turns a comma-separated form value into a cleaned []string,
// preserving order and case.
func SplitList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// --- Pagination ---

// ParsePagination reads page/limit query params and returns skip and a
// capped limit for the storage query.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return (page - 1) * limit, limit
}
