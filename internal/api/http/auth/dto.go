package auth

type registerInput struct {
	Body RegisterRequest
}

type RegisterRequest struct {
	Username    string `json:"username" minLength:"3" maxLength:"32" doc:"Login name; the account slug is derived from it"`
	Password    string `json:"password" minLength:"8" format:"password"`
	Name        string `json:"name,omitempty" maxLength:"200" doc:"Display name, defaults to the username"`
	Affiliation string `json:"affiliation,omitempty" maxLength:"200"`
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"account_id"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

type loginInput struct {
	Body LoginRequest
}

type LoginRequest struct {
	Username string `json:"username" minLength:"3" maxLength:"32"`
	Password string `json:"password" minLength:"1" format:"password"`
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}
