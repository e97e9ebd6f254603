// seed_tasks.go — standalone script to parse TODO.md and seed tasks via the Triage API.
//
// Item annotations:
//
//	- [ ] Ship the release notes due:2025-09-01 ~2h
//
// Priority emoji set importance; due:YYYY-MM-DD sets the deadline; ~Nh sets
// the estimate. Unannotated items get defaults.
//
// Usage:
//
//	go run scripts/seed_tasks.go -todo /path/to/TODO.md -api http://localhost:8700
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type taskItem struct {
	Title          string  `json:"title"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int64 `json:"dependencies,omitempty"`
}

// Priority emoji to importance mapping
var priorityMap = map[string]int{
	"🔴": 10, // P0
	"🟠": 8,  // P1
	"🟡": 5,  // P2
	"🟢": 3,  // P3
}

var (
	dueRe   = regexp.MustCompile(`\bdue:(\d{4}-\d{2}-\d{2})\b`)
	hoursRe = regexp.MustCompile(`~(\d+(?:\.\d+)?)h\b`)
)

func main() {
	todoPath := flag.String("todo", "TODO.md", "path to TODO.md file")
	apiURL := flag.String("api", "http://localhost:8700", "Triage API base URL")
	defaultDays := flag.Int("default-days", 14, "due date offset for unannotated items")
	dryRun := flag.Bool("dry-run", false, "print items without posting")
	flag.Parse()

	f, err := os.Open(*todoPath)
	if err != nil {
		log.Fatalf("open TODO.md: %v", err)
	}
	defer f.Close()

	var items []taskItem
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(trimmed, "- [ ] ") {
			continue
		}
		text := strings.TrimPrefix(trimmed, "- [ ] ")

		importance := 5
		for emoji, imp := range priorityMap {
			if strings.Contains(text, emoji) {
				importance = imp
				text = strings.TrimSpace(strings.ReplaceAll(text, emoji, ""))
				break
			}
		}

		dueDate := time.Now().AddDate(0, 0, *defaultDays).Format("2006-01-02")
		if m := dueRe.FindStringSubmatch(text); m != nil {
			dueDate = m[1]
			text = strings.TrimSpace(dueRe.ReplaceAllString(text, ""))
		}

		hours := 2.0
		if m := hoursRe.FindStringSubmatch(text); m != nil {
			if h, err := strconv.ParseFloat(m[1], 64); err == nil && h > 0 {
				hours = h
			}
			text = strings.TrimSpace(hoursRe.ReplaceAllString(text, ""))
		}

		if text == "" {
			continue
		}

		items = append(items, taskItem{
			Title:          text,
			DueDate:        dueDate,
			EstimatedHours: hours,
			Importance:     importance,
		})
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("scan TODO.md: %v", err)
	}

	log.Printf("parsed %d items from %s", len(items), *todoPath)

	if *dryRun {
		for i, item := range items {
			fmt.Printf("[%d] %s (due=%s, hours=%.1f, importance=%d)\n",
				i+1, item.Title, item.DueDate, item.EstimatedHours, item.Importance)
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, item := range items {
		body, _ := json.Marshal(item)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/tasks", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", item.Title, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", item.Title, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			log.Printf("skip %q: status %d", item.Title, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}
