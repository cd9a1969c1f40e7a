package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

func main() {
	// Check the health endpoint
	fmt.Println("Checking health endpoint...")
	resp, err := http.Get("http://localhost:8080/api/health")
	if err != nil {
		fmt.Printf("Error calling health endpoint: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		return
	}

	fmt.Printf("Health check response (status %d):\n%s\n\n", resp.StatusCode, string(body))

	// Resolve a word
	fmt.Println("Resolving a word...")
	resp, err = http.Get("http://localhost:8080/api/resolve?word=hello")
	if err != nil {
		fmt.Printf("Error calling resolve endpoint: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, _ = io.ReadAll(resp.Body)
	fmt.Printf("Resolve response (status %d):\n%s\n\n", resp.StatusCode, string(body))

	// Synthesize a sentence
	fmt.Println("Synthesizing a sentence...")
	payload := []byte(`{"words": ["hello", "world"], "fps": 24}`)

	client := &http.Client{Timeout: 10 * time.Minute}
	resp, err = client.Post(
		"http://localhost:8080/api/sentence",
		"application/json",
		bytes.NewReader(payload),
	)
	if err != nil {
		fmt.Printf("Error calling sentence endpoint: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, _ = io.ReadAll(resp.Body)
	fmt.Printf("Sentence response (status %d):\n%s\n", resp.StatusCode, string(body))
}
