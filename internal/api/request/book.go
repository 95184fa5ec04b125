package request

type CreateBookRequest struct {
	Title       string `json:"title"`
	LaunchDate  string `json:"launchDate"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	Illustrator string `json:"illustrator"`
	ISBN        string `json:"isbn"`
	Genre       string `json:"genre"`
}

type UpdateBookRequest struct {
	Title       *string `json:"title,omitempty"`
	LaunchDate  *string `json:"launchDate,omitempty"`
	Description *string `json:"description,omitempty"`
	Author      *string `json:"author,omitempty"`
	Publisher   *string `json:"publisher,omitempty"`
	Illustrator *string `json:"illustrator,omitempty"`
	ISBN        *string `json:"isbn,omitempty"`
	Genre       *string `json:"genre,omitempty"`
}
