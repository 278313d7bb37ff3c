//go:build ignore
// +build ignore

// Package main provides a manual concurrency stress check for the
// circulation ledger.
//
// Usage:
//
//	go run ./scripts/circulation_test.go <book_name> <workers>
//
// Or with environment variables:
//
//	BOOK_NAME="Dune" WORKERS=10 USERNAME=alice PASSWORD=pw go run ./scripts/circulation_test.go
//
// What it does:
//  1. Logs in and keeps the session cookie.
//  2. Fires N goroutines alternating issue/return submissions for the same
//     book name simultaneously.
//  3. Reports the response codes and reminds you to inspect the books table:
//     the ledger insert and the availability update run in one transaction,
//     so the final flag must match the last committed action.
//
// Prerequisites:
//   - Server running (SERVER_ADDR, default http://localhost:8080).
//   - The user and the book must already exist.
package main

import (
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"
)

const defaultServerAddr = "http://localhost:8080"

func main() {
	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = defaultServerAddr
	}

	bookName := os.Getenv("BOOK_NAME")
	workers := 10
	if w := os.Getenv("WORKERS"); w != "" {
		if n, err := strconv.Atoi(w); err == nil {
			workers = n
		}
	}
	args := os.Args[1:]
	if len(args) >= 1 {
		bookName = args[0]
	}
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			workers = n
		}
	}
	if bookName == "" {
		log.Fatal("Usage: BOOK_NAME=<name> [WORKERS=n] go run ./scripts/circulation_test.go\n" +
			"  or: go run ./scripts/circulation_test.go <book_name> [workers]")
	}

	username := os.Getenv("USERNAME")
	password := os.Getenv("PASSWORD")
	if username == "" || password == "" {
		log.Fatal("USERNAME and PASSWORD must be set (an existing account)")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.PostForm(serverAddr+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		log.Fatalf("login request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		log.Fatalf("login failed: status %d (check credentials)", resp.StatusCode)
	}

	fmt.Printf("=== Circulation Concurrency Check ===\n")
	fmt.Printf("Server:  %s\n", serverAddr)
	fmt.Printf("Book:    %s\n", bookName)
	fmt.Printf("Workers: %d\n\n", workers)

	var wg sync.WaitGroup
	results := make([]int, workers)
	start := time.Now()
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			action := "issue"
			if i%2 == 1 {
				action = "return"
			}
			resp, err := client.PostForm(serverAddr+"/issue_return", url.Values{
				"book_name":    {bookName},
				"student_name": {fmt.Sprintf("stress-%d", i)},
				"action":       {action},
			})
			if err != nil {
				log.Printf("worker %d: %v", i, err)
				results[i] = -1
				return
			}
			resp.Body.Close()
			results[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	ok := 0
	for i, code := range results {
		if code == http.StatusOK {
			ok++
		} else {
			fmt.Printf("worker %d: status %d\n", i, code)
		}
	}
	fmt.Printf("\n%d/%d submissions succeeded in %s\n", ok, workers, time.Since(start).Round(time.Millisecond))
	fmt.Println("Verify in the DB that the transactions count matches and the")
	fmt.Println("availability flag equals the action of the highest ledger id.")
}
