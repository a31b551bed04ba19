package handler

import "devconnect/pkg/validation"

type CreatePostRequest struct {
	Text string `json:"text"`
}

func (r *CreatePostRequest) Validate() []validation.Violation {
	var v validation.Result
	v.Require("text", r.Text, "Text is required")
	return v.Violations()
}

type CommentRequest struct {
	Text string `json:"text"`
}

func (r *CommentRequest) Validate() []validation.Violation {
	var v validation.Result
	v.Require("text", r.Text, "Text is required")
	return v.Violations()
}
