// Command shikakufn serves the solver as an HTTP function. Puzzles arrive
// inline in the request or are fetched from a BigQuery puzzle library by
// scope.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/joho/godotenv"
	"google.golang.org/api/iterator"

	"puzzlekit.dev/shikaku"
)

type SolveGridRequest struct {
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Rows         []string `json:"rows"`
	PuzzleScope  string   `json:"puzzleScope"`
	MaxSolutions int      `json:"maxSolutions"`
}

type SolveGridResponse struct {
	Success   bool     `json:"success"`
	Solutions []string `json:"solutions"`
	Count     int      `json:"count"`
	Error     string   `json:"error,omitempty"`
}

// getPuzzleLines fetches a stored puzzle's text lines (dimensions line
// included) from the BigQuery puzzle library.
func getPuzzleLines(ctx context.Context, scope string) ([]string, error) {
	project := os.Getenv("GOOGLE_PROJECT_ID")
	if project == "" {
		return nil, fmt.Errorf("GOOGLE_PROJECT_ID is not set")
	}
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	query := fmt.Sprintf("SELECT line_no, line_text FROM `%s.PuzzleLibrary.shikaku_grids` WHERE scope = %q ORDER BY line_no", project, scope)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var lines []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		line, ok := row[1].(string)
		if !ok {
			return nil, fmt.Errorf("row[1] is not a string: %v", row[1])
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no puzzle stored for scope %q", scope)
	}
	return lines, nil
}

func execute(ctx context.Context, req SolveGridRequest) ([]string, error) {
	if req.MaxSolutions <= 0 {
		return nil, fmt.Errorf("maxSolutions must be at least 1")
	}
	if req.MaxSolutions > 50 {
		return nil, fmt.Errorf("maxSolutions must be at most 50")
	}

	var lines []string
	if req.PuzzleScope != "" {
		fetched, err := getPuzzleLines(ctx, req.PuzzleScope)
		if err != nil {
			return nil, fmt.Errorf("getPuzzleLines: %w", err)
		}
		lines = fetched
	} else {
		if req.Width <= 0 || req.Height <= 0 {
			return nil, fmt.Errorf("width and height must be positive")
		}
		if len(req.Rows) == 0 {
			return nil, fmt.Errorf("rows must not be empty")
		}
		lines = append([]string{fmt.Sprintf("%d %d", req.Width, req.Height)}, req.Rows...)
	}

	board, err := shikaku.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		return nil, fmt.Errorf("parsing puzzle: %w", err)
	}

	timeout := 1 * time.Minute
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline) - 5*time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var solutions []string
	solver := shikaku.New(board)
	for sol := range solver.Solutions(ctx) {
		solutions = append(solutions, sol)
		if len(solutions) >= req.MaxSolutions {
			break
		}
	}
	if err := solver.Err(); err != nil {
		return nil, err
	}
	sort.Strings(solutions)
	return solutions, nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func solveGrid(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req SolveGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		response := SolveGridResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	solutions, err := execute(r.Context(), req)

	response := SolveGridResponse{
		Success:   err == nil,
		Solutions: solutions,
		Count:     len(solutions),
	}
	if err != nil {
		response.Error = err.Error()
	} else if len(solutions) == 0 {
		response.Error = "Unsolvable grid"
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error marshaling response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	funcframework.RegisterHTTPFunction("/solve-grid", solveGrid)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
