package wb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrobelens/backend/internal/domain"
)

func i64(v int64) *int64 { return &v }

func TestMapProducts(t *testing.T) {
	rating := 4.8
	feedbacks := 1520

	tests := []struct {
		name string
		resp *domain.WBSearchResponse
		want []domain.ProductCard
	}{
		{
			name: "nil response",
			resp: nil,
			want: nil,
		},
		{
			name: "full product",
			resp: &domain.WBSearchResponse{Products: []domain.WBProduct{{
				ID:        123456,
				Name:      " Куртка зимняя мужская ",
				Brand:     "North",
				Rating:    &rating,
				Feedbacks: &feedbacks,
				Sizes: []domain.WBSize{
					{Name: "48", Price: &domain.WBPrice{Basic: i64(1299000), Product: i64(649950)}},
					{Name: "50", Price: &domain.WBPrice{Basic: i64(1), Product: i64(1)}},
				},
			}}},
			want: []domain.ProductCard{{
				ID:            123456,
				Name:          "Куртка зимняя мужская",
				Brand:         "North",
				Price:         func() *float64 { v := 6499.5; return &v }(),
				BasePrice:     func() *float64 { v := 12990.0; return &v }(),
				Rating:        &rating,
				FeedbackCount: &feedbacks,
				Link:          "https://www.wildberries.ru/catalog/123456/detail.aspx",
			}},
		},
		{
			name: "missing id is skipped",
			resp: &domain.WBSearchResponse{Products: []domain.WBProduct{
				{ID: 0, Name: "без артикула"},
				{ID: 7, Name: "Футболка"},
			}},
			want: []domain.ProductCard{{
				ID:   7,
				Name: "Футболка",
				Link: "https://www.wildberries.ru/catalog/7/detail.aspx",
			}},
		},
		{
			name: "size without price",
			resp: &domain.WBSearchResponse{Products: []domain.WBProduct{
				{ID: 9, Name: "Шарф", Sizes: []domain.WBSize{{Name: "0"}}},
			}},
			want: []domain.ProductCard{{
				ID:   9,
				Name: "Шарф",
				Link: "https://www.wildberries.ru/catalog/9/detail.aspx",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapProducts(tt.resp)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.Len(t, got, len(tt.want))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapProducts_EmptyList(t *testing.T) {
	got := MapProducts(&domain.WBSearchResponse{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
