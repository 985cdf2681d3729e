package handler

import (
	"time"

	"reviewhub/internal/app/reviewhub/entity"
	"reviewhub/internal/app/reviewhub/util"

	"github.com/go-playground/validator/v10"
)

// toCommentResponse строит общую схему комментария
// TimeAgo вычисляется здесь, в момент сериализации
func toCommentResponse(c *entity.Comment) entity.CommentResponse {
	return entity.CommentResponse{
		ID:         c.ID,
		ProductID:  c.ProductID,
		UserID:     c.UserID,
		Username:   c.Username,
		Content:    c.Content,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		TimeAgo:    util.TimeAgo(c.CreatedAt, time.Now()),
	}
}

func toCommentListResponse(comments []entity.Comment) entity.CommentListResponse {
	responses := make([]entity.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, toCommentResponse(&comments[i]))
	}

	return entity.CommentListResponse{
		Comments: responses,
		Total:    len(responses),
	}
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
