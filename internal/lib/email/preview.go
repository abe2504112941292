package email

// PreviewData holds sample values for every template variable, keyed by
// template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "John",
	},
	TemplatePhotoLiked: {
		"OwnerName":  "John",
		"LikerLogin": "jane",
		"PhotoTitle": "Sunset over the bay",
	},
}
