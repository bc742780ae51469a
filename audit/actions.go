package audit

// Action is the closed set of auditable admin actions.
type Action string

const (
	ActionImageUpload        Action = "image_upload"
	ActionImageDelete        Action = "image_delete"
	ActionVideoUpload        Action = "video_upload"
	ActionContentCreate      Action = "content_create"
	ActionContentUpdate      Action = "content_update"
	ActionContentDelete      Action = "content_delete"
	ActionCastAdd            Action = "cast_add"
	ActionCrewAdd            Action = "crew_add"
	ActionEpisodeAdd         Action = "episode_add"
	ActionNotificationSend   Action = "notification_send"
	ActionNotificationRead   Action = "notification_read"
	ActionNotificationDelete Action = "notification_delete"
	ActionTemplateCreate     Action = "template_create"
	ActionTemplateUpdate     Action = "template_update"
	ActionTemplateDelete     Action = "template_delete"
	ActionSettingsUpdate     Action = "settings_update"
	ActionAlertSent          Action = "alert_sent"
	ActionLogin              Action = "login"
	ActionError              Action = "error"
)

// Descriptor carries the UI hints for one action.
type Descriptor struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var descriptors = map[Action]Descriptor{
	ActionImageUpload:        {Label: "Image uploaded", Icon: "image", Color: "green"},
	ActionImageDelete:        {Label: "Image deleted", Icon: "image", Color: "red"},
	ActionVideoUpload:        {Label: "Video uploaded", Icon: "video", Color: "green"},
	ActionContentCreate:      {Label: "Content created", Icon: "film", Color: "green"},
	ActionContentUpdate:      {Label: "Content updated", Icon: "film", Color: "blue"},
	ActionContentDelete:      {Label: "Content deleted", Icon: "film", Color: "red"},
	ActionCastAdd:            {Label: "Cast member added", Icon: "user", Color: "blue"},
	ActionCrewAdd:            {Label: "Crew member added", Icon: "user", Color: "blue"},
	ActionEpisodeAdd:         {Label: "Episode added", Icon: "tv", Color: "green"},
	ActionNotificationSend:   {Label: "Notification sent", Icon: "bell", Color: "blue"},
	ActionNotificationRead:   {Label: "Notification read", Icon: "bell", Color: "gray"},
	ActionNotificationDelete: {Label: "Notification deleted", Icon: "bell", Color: "red"},
	ActionTemplateCreate:     {Label: "Template created", Icon: "mail", Color: "green"},
	ActionTemplateUpdate:     {Label: "Template updated", Icon: "mail", Color: "blue"},
	ActionTemplateDelete:     {Label: "Template deleted", Icon: "mail", Color: "red"},
	ActionSettingsUpdate:     {Label: "Settings updated", Icon: "gear", Color: "blue"},
	ActionAlertSent:          {Label: "Alert dispatched", Icon: "siren", Color: "orange"},
	ActionLogin:              {Label: "Admin login", Icon: "key", Color: "gray"},
	ActionError:              {Label: "Error", Icon: "alert", Color: "red"},
}

var defaultDescriptor = Descriptor{Label: "Activity", Icon: "dot", Color: "gray"}

// Describe returns the UI descriptor for an action, with an exhaustive
// default for anything outside the table.
func Describe(a Action) Descriptor {
	if d, ok := descriptors[a]; ok {
		return d
	}
	return defaultDescriptor
}
