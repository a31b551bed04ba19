package handler

import (
	"encoding/json"
	"strings"

	"devconnect/internal/profile/service"
	"devconnect/pkg/validation"
)

// UpsertProfileRequest accepts skills either as a pre-split list or as a
// single comma-delimited string; both normalize to the same trimmed list.
type UpsertProfileRequest struct {
	Company        string          `json:"company"`
	Website        string          `json:"website"`
	Location       string          `json:"location"`
	Status         string          `json:"status"`
	Skills         json.RawMessage `json:"skills"`
	Bio            string          `json:"bio"`
	GithubUsername string          `json:"githubusername"`
	Youtube        string          `json:"youtube"`
	Twitter        string          `json:"twitter"`
	Facebook       string          `json:"facebook"`
	Linkedin       string          `json:"linkedin"`
	Instagram      string          `json:"instagram"`
	Github         string          `json:"github"`
}

// SkillList normalizes the skills field into a trimmed, order-preserving list.
func (r *UpsertProfileRequest) SkillList() []string {
	if len(r.Skills) == 0 {
		return nil
	}

	var asList []string
	if err := json.Unmarshal(r.Skills, &asList); err == nil {
		return trimAll(asList)
	}

	var asString string
	if err := json.Unmarshal(r.Skills, &asString); err == nil {
		return trimAll(strings.Split(asString, ","))
	}

	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (r *UpsertProfileRequest) Validate() []validation.Violation {
	var v validation.Result
	v.Require("status", r.Status, "Status is required")
	if len(r.SkillList()) == 0 {
		v.Add("skills", "Skills is required")
	}
	return v.Violations()
}

// Input converts the request into the service-level upsert input.
func (r *UpsertProfileRequest) Input() service.UpsertInput {
	return service.UpsertInput{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Status:         r.Status,
		Skills:         r.SkillList(),
		Bio:            r.Bio,
		GithubUsername: r.GithubUsername,
		Youtube:        r.Youtube,
		Twitter:        r.Twitter,
		Facebook:       r.Facebook,
		Linkedin:       r.Linkedin,
		Instagram:      r.Instagram,
		Github:         r.Github,
	}
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (r *ExperienceRequest) Validate() []validation.Violation {
	var v validation.Result
	v.Require("title", r.Title, "Title is required")
	v.Require("company", r.Company, "Company is required")
	v.Require("from", r.From, "From date is required")
	v.DateOrder("from", r.From, r.To, "'From' date must be before 'to' date")
	return v.Violations()
}

func (r *ExperienceRequest) Input() service.ExperienceInput {
	return service.ExperienceInput{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        r.From,
		To:          r.To,
		Current:     r.Current,
		Description: r.Description,
	}
}

type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r *EducationRequest) Validate() []validation.Violation {
	var v validation.Result
	v.Require("school", r.School, "School is required")
	v.Require("degree", r.Degree, "Degree is required")
	v.Require("fieldofstudy", r.FieldOfStudy, "Field of study is required")
	v.Require("from", r.From, "From date is required")
	v.DateOrder("from", r.From, r.To, "'From' date must be before 'to' date")
	return v.Violations()
}

func (r *EducationRequest) Input() service.EducationInput {
	return service.EducationInput{
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		From:         r.From,
		To:           r.To,
		Current:      r.Current,
		Description:  r.Description,
	}
}
