package client

import "errors"

var (
	ErrNoChanges       = errors.New("client: no changes made")
	ErrUploadInFlight  = errors.New("client: image upload in progress")
	ErrUploadFailed    = errors.New("client: image upload failed")
	ErrInvalidFileType = errors.New("client: file is not an image")
)

var messages = map[error]string{
	ErrNotSignedIn:     "Please sign in to continue.",
	ErrNoChanges:       "No changes made",
	ErrUploadInFlight:  "Please wait for image to upload",
	ErrUploadFailed:    "Could not upload image. Please ensure the file size is less than 2MB and try again.",
	ErrInvalidFileType: "Invalid file type. Please upload an image file.",
}

// Message returns the text a form shows the user for err. Errors without
// a dedicated message fall back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	for target, text := range messages {
		if errors.Is(err, target) {
			return text
		}
	}
	return err.Error()
}

// Field names a profile form input.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// ProfileForm is the state of the profile editor. It is a value: Reduce
// returns a new form and never mutates its input.
type ProfileForm struct {
	changes        map[Field]string
	pictureURL     string
	uploading      bool
	uploadProgress int
	uploadError    error
}

// Action is one of the form events below.
type Action interface {
	isAction()
}

type (
	FieldChanged struct {
		Field Field
		Value string
	}
	UploadStarted    struct{}
	UploadProgressed struct{ Percent int }
	UploadSucceeded  struct{ URL string }
	UploadFailed     struct{ Err error }
	Reset            struct{}
)

func (FieldChanged) isAction()     {}
func (UploadStarted) isAction()    {}
func (UploadProgressed) isAction() {}
func (UploadSucceeded) isAction()  {}
func (UploadFailed) isAction()     {}
func (Reset) isAction()            {}

func (f ProfileForm) clone() ProfileForm {
	next := f
	next.changes = make(map[Field]string, len(f.changes))
	for k, v := range f.changes {
		next.changes[k] = v
	}
	return next
}

// Reduce applies action to form.
func Reduce(form ProfileForm, action Action) ProfileForm {
	next := form.clone()

	switch a := action.(type) {
	case FieldChanged:
		next.changes[a.Field] = a.Value
	case UploadStarted:
		next.uploading = true
		next.uploadProgress = 0
		next.uploadError = nil
	case UploadProgressed:
		if !next.uploading {
			return form
		}
		next.uploadProgress = clampPercent(a.Percent)
	case UploadSucceeded:
		next.uploading = false
		next.uploadProgress = 100
		next.pictureURL = a.URL
	case UploadFailed:
		next.uploading = false
		next.uploadProgress = 0
		next.pictureURL = ""
		next.uploadError = a.Err
		if next.uploadError == nil {
			next.uploadError = ErrUploadFailed
		}
	case Reset:
		return ProfileForm{}
	}
	return next
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (f ProfileForm) Value(field Field) (string, bool) {
	v, ok := f.changes[field]
	return v, ok
}

func (f ProfileForm) PictureURL() string  { return f.pictureURL }
func (f ProfileForm) Uploading() bool     { return f.uploading }
func (f ProfileForm) UploadProgress() int { return f.uploadProgress }
func (f ProfileForm) UploadError() error  { return f.uploadError }

// Submission builds the update request, refusing while an upload is running
// or when nothing changed.
func (f ProfileForm) Submission() (ProfileUpdate, error) {
	if f.uploading {
		return ProfileUpdate{}, ErrUploadInFlight
	}

	var update ProfileUpdate
	if v, ok := f.changes[FieldUsername]; ok {
		update.Username = &v
	}
	if v, ok := f.changes[FieldEmail]; ok {
		update.Email = &v
	}
	if v, ok := f.changes[FieldPassword]; ok {
		update.Password = &v
	}
	if f.pictureURL != "" {
		url := f.pictureURL
		update.ProfilePicture = &url
	}

	if update == (ProfileUpdate{}) {
		return ProfileUpdate{}, ErrNoChanges
	}
	return update, nil
}
