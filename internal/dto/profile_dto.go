package dto

import "encoding/json"

// UpdateProfileRequest uses pointers so absent fields stay untouched.
type UpdateProfileRequest struct {
	DisplayName   *string          `json:"display_name,omitempty"`
	AvatarURL     *string          `json:"avatar_url,omitempty"`
	Bio           *string          `json:"bio,omitempty"`
	Area          *string          `json:"area,omitempty"`
	Interests     *json.RawMessage `json:"interests,omitempty"`
	ChildrenInfo  *json.RawMessage `json:"children_info,omitempty"`
	ShareLocation *bool            `json:"share_location,omitempty"`
	Latitude      *float64         `json:"latitude,omitempty"`
	Longitude     *float64         `json:"longitude,omitempty"`
}
