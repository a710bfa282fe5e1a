// Package news provides the HTTP handlers for the aggregated news feed.
package news

import "market-news/internal/domain/entity"

// DTO represents the JSON structure of one news item.
// The parsed publication instant is a sort key only and is not exposed.
type DTO struct {
	Title       string  `json:"title" example:"Vàng tăng giá phiên thứ ba liên tiếp"`
	Link        string  `json:"link" example:"https://vn.investing.com/news/commodities-news/gold-123"`
	Description string  `json:"description" example:"<p>Giá vàng giao ngay tăng 0,4%...</p>"`
	Published   string  `json:"published" example:"Mon, 15 Jan 2024 08:30:00 GMT"`
	Source      string  `json:"source" example:"Tổng quan thị trường"`
	Image       *string `json:"image" example:"https://i-invdn-com.investing.com/news/gold_800x533.jpg"`
}

// toDTO converts an entity.NewsItem into its wire form.
func toDTO(item entity.NewsItem) DTO {
	return DTO{
		Title:       item.Title,
		Link:        item.Link,
		Description: item.Description,
		Published:   item.Published,
		Source:      item.Source,
		Image:       item.Image,
	}
}

// toDTOs converts items preserving order. The result is never nil so an
// empty aggregation encodes as [].
func toDTOs(items []entity.NewsItem) []DTO {
	out := make([]DTO, 0, len(items))
	for _, it := range items {
		out = append(out, toDTO(it))
	}
	return out
}
