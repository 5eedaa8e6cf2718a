package dto_test

import (
	"testing"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPage(t *testing.T) {
	cases := []struct {
		name string
		in   dto.PageRequest
		want dto.PageRequest
	}{
		{"vacía usa el límite por defecto", dto.PageRequest{}, dto.PageRequest{Limit: dto.DefaultLimit}},
		{"límite negativo", dto.PageRequest{Limit: -3, Offset: 5}, dto.PageRequest{Limit: dto.DefaultLimit, Offset: 5}},
		{"límite sobre el máximo", dto.PageRequest{Limit: 500}, dto.PageRequest{Limit: dto.MaxLimit}},
		{"offset negativo", dto.PageRequest{Limit: 10, Offset: -1}, dto.PageRequest{Limit: 10}},
		{"válida no cambia", dto.PageRequest{Limit: 50, Offset: 40}, dto.PageRequest{Limit: 50, Offset: 40}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.DefaultPage()
			assert.Equal(t, tc.want, p)
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	page := dto.PageRequest{Limit: 2, Offset: 4}

	full := dto.NewPageResponse(page, 2)
	assert.Equal(t, dto.PageResponse{Limit: 2, Offset: 4, Count: 2, HasMore: true}, full)

	last := dto.NewPageResponse(page, 1)
	assert.False(t, last.HasMore)
	assert.Equal(t, 1, last.Count)

	assert.False(t, dto.NewPageResponse(dto.PageRequest{}, 0).HasMore)
}
