package authctx

import (
	"testing"

	"github.com/truongminh05/VCI-Web/internal/model"
)

func TestEvaluate(t *testing.T) {
	user := &User{ID: "u-1"}
	tests := []struct {
		name  string
		state State
		want  Decision
	}{
		{"loading", State{Loading: true}, DecisionWait},
		{"loading with admin", State{Loading: true, User: user, Role: model.RoleAdmin}, DecisionWait},
		{"no user", State{}, DecisionRedirect},
		{"no profile", State{User: user}, DecisionRedirect},
		{"student", State{User: user, Role: model.RoleStudent}, DecisionRedirect},
		{"teacher", State{User: user, Role: model.RoleTeacher}, DecisionRedirect},
		{"admin", State{User: user, Role: model.RoleAdmin}, DecisionAllow},
		{"role without user", State{Role: model.RoleAdmin}, DecisionRedirect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.state); got != tt.want {
				t.Errorf("Evaluate = %v, want %v", got, tt.want)
			}
		})
	}
}
