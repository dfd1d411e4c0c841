package postgres

import "testing"

func TestNoticeSortClause(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"defaults", "", "", "created_at DESC"},
		{"title ascending", "title", "asc", "title ASC"},
		{"updated descending", "updated_at", "desc", "updated_at DESC"},
		{"unknown column falls back", "no_such_column", "asc", "created_at ASC"},
		{"subquery rejected", "(SELECT password_hash FROM users LIMIT 1)", "asc", "created_at ASC"},
		{"order injection rejected", "created_at", "asc; DROP TABLE notices", "created_at DESC"},
		{"case trickery rejected", "Created_At", "desc", "created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := noticeSortClause(tt.sortBy, tt.sortOrder); got != tt.want {
				t.Errorf("noticeSortClause(%q, %q) = %q, want %q", tt.sortBy, tt.sortOrder, got, tt.want)
			}
		})
	}
}
