package sqlite

import (
	"strings"
	"testing"

	"github.com/linkshelfapp/linkshelf-server/internal/search"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

// Placeholders bind positionally, so args must follow the order they
// appear in the emitted text: the FTS MATCH inside the join comes
// before every WHERE parameter.
func TestCompileListQuery_ArgOrder(t *testing.T) {
	c := compileListQuery("user-1", store.ListQuery{
		Search:       "golang",
		CollectionID: "col-1",
		Tags:         []string{"go", "web"},
	})
	query, args := c.sql(10, 5)

	matchPos := strings.Index(query, "MATCH ?")
	wherePos := strings.Index(query, "WHERE b.user_id = ?")
	if matchPos < 0 || wherePos < 0 {
		t.Fatalf("expected MATCH and WHERE placeholders in:\n%s", query)
	}
	if matchPos > wherePos {
		t.Fatalf("MATCH placeholder should precede the WHERE clause in:\n%s", query)
	}

	if got, want := args[0], search.PrefixQuery("golang"); got != want {
		t.Errorf("args[0]: got %v, want %v (the MATCH term)", got, want)
	}
	if got := args[1]; got != "user-1" {
		t.Errorf("args[1]: got %v, want user-1", got)
	}

	// Collection filter, tag filter, and pagination trail the search args.
	if got := args[len(args)-2]; got != 10 {
		t.Errorf("limit arg: got %v, want 10", got)
	}
	if got := args[len(args)-1]; got != 5 {
		t.Errorf("offset arg: got %v, want 5", got)
	}

	if got, want := len(args), strings.Count(query, "?"); got != want {
		t.Errorf("arg count: got %d, want %d placeholders", got, want)
	}
}

func TestCompileListQuery_NoSearch(t *testing.T) {
	c := compileListQuery("user-1", store.ListQuery{})
	query, args := c.sql(50, 0)

	if strings.Contains(query, "MATCH") {
		t.Errorf("unexpected full-text join in:\n%s", query)
	}
	if got, want := len(args), 3; got != want {
		t.Errorf("arg count: got %d, want %d (user, limit, offset)", got, want)
	}
	if args[0] != "user-1" {
		t.Errorf("args[0]: got %v, want user-1", args[0])
	}
}
