package validation_test

import (
	"errors"
	"testing"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postingInput struct {
	Title       string   `validate:"required,min=3,max=200"`
	Description string   `validate:"required,min=50,max=5000"`
	Skills      []string `validate:"max=30,dive,min=1,max=200"`
	Stage       string   `validate:"omitempty,job_stage"`
}

func TestSanitizeTrimsStrings(t *testing.T) {
	in := &postingInput{
		Title:  "  Backend Engineer  ",
		Skills: []string{" Go ", "", "  "},
	}

	validation.Sanitize(in)

	assert.Equal(t, "Backend Engineer", in.Title)
	assert.Equal(t, []string{"Go"}, in.Skills)
}

func TestStructTitleBounds(t *testing.T) {
	v := validation.New()
	longDesc := "Kami mencari engineer yang berpengalaman membangun layanan backend skala besar."

	tests := []struct {
		name  string
		title string
		ok    bool
	}{
		{"too short after trim", "  ab  ", false},
		{"minimum", "abc", true},
		{"maximum", string(make200()), true},
		{"too long", string(make200()) + "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(v, &postingInput{Title: tt.title, Description: longDesc})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func make200() []byte {
	b := make([]byte, 200)
	for i := range b {
		b[i] = 'a'
	}
	return b
}

func TestStructReturnsFieldMessages(t *testing.T) {
	err := validation.Struct(validation.New(), &postingInput{Title: "Go", Description: "short"})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Details, "Judul Lowongan: Minimal 3 karakter")
	assert.Contains(t, appErr.Details, "Deskripsi: Minimal 50 karakter")
}

func TestStageValidators(t *testing.T) {
	v := validation.New()

	assert.NoError(t, validation.Struct(v, &postingInput{Title: "abc", Description: string(make200()), Stage: string(domain.StageOffer)}))
	assert.Error(t, validation.Struct(v, &postingInput{Title: "abc", Description: string(make200()), Stage: string(domain.StageReviewed)}))
}

func TestPageBounds(t *testing.T) {
	v := validation.New()

	assert.NoError(t, validation.Struct(v, &domain.Page{Page: 1, Limit: 100}))
	assert.Error(t, validation.Struct(v, &domain.Page{Page: 1, Limit: 101}))
	assert.Error(t, validation.Struct(v, &domain.Page{Page: -1, Limit: 10}))
}
