package domain

import (
	"fmt"
	"slices"
	"sort"
)

// Lens is a typed getter/setter pair focused on one path of the settings tree.
type Lens[T bool | string] struct {
	path    Path
	focus   func(*Settings) *T
	allowed []string
}

// Path returns the preference path the lens is focused on.
func (l Lens[T]) Path() Path { return l.path }

// Get reads the focused preference.
func (l Lens[T]) Get(s Settings) T {
	return *l.focus(&s)
}

// Set returns a copy of s with the focused preference replaced.
// The receiver snapshot is never modified.
func (l Lens[T]) Set(s Settings, v T) Settings {
	*l.focus(&s) = v
	return s
}

// Allowed lists the accepted values of an enumerated preference, or nil.
func (l Lens[T]) Allowed() []string { return slices.Clone(l.allowed) }

func (l Lens[T]) kind() Kind {
	var zero T
	if _, ok := any(zero).(bool); ok {
		return KindBool
	}
	return KindString
}

func (l Lens[T]) getValue(s Settings) Value {
	switch v := any(l.Get(s)).(type) {
	case bool:
		return Bool(v)
	case string:
		return String(v)
	}
	return Absent()
}

func (l Lens[T]) setValue(s Settings, v Value) (Settings, error) {
	if v.Kind() != l.kind() {
		return s, fmt.Errorf("%w: %s expects %s, got %s", ErrTypeMismatch, l.path, l.kind(), v.Kind())
	}
	if len(l.allowed) > 0 && !slices.Contains(l.allowed, v.Text()) {
		return s, fmt.Errorf("%w: %q is not one of %v for %s", ErrInvalidValue, v.Text(), l.allowed, l.path)
	}
	var out T
	switch p := any(&out).(type) {
	case *bool:
		*p, _ = v.AsBool()
	case *string:
		text, _ := v.AsString()
		clean, err := SanitizeText(text)
		if err != nil {
			return s, fmt.Errorf("%s: %w", l.path, err)
		}
		*p = clean
	}
	return l.Set(s, out), nil
}

// binding is the untyped view of a lens used for path-addressed access.
type binding interface {
	Path() Path
	kind() Kind
	getValue(Settings) Value
	setValue(Settings, Value) (Settings, error)
}

func boolLens(path string, focus func(*Settings) *bool) Lens[bool] {
	return Lens[bool]{path: ParsePath(path), focus: focus}
}

func stringLens(path string, focus func(*Settings) *string, allowed ...string) Lens[string] {
	return Lens[string]{path: ParsePath(path), focus: focus, allowed: allowed}
}

var (
	LayoutLens               = stringLens("layout", func(s *Settings) *string { return &s.Layout }, LayoutAuto, LayoutMultiple, LayoutSingle)
	StretchLens              = boolLens("stretch", func(s *Settings) *bool { return &s.Stretch })
	NavbarUnderLens          = boolLens("navbar_under", func(s *Settings) *bool { return &s.NavbarUnder })
	SwipeToChangeColumnsLens = boolLens("swipe_to_change_columns", func(s *Settings) *bool { return &s.SwipeToChangeColumns })
	SideArmLens              = stringLens("side_arm", func(s *Settings) *string { return &s.SideArm },
		SideArmNone, SideArmDirect, SideArmPrivate, SideArmUnlisted, SideArmPublic)
	SideArmReplyModeLens = stringLens("side_arm_reply_mode", func(s *Settings) *string { return &s.SideArmReplyMode },
		SideArmReplyKeep, SideArmReplyCopy, SideArmReplyRestrict)
	ShowReplyCountLens = boolLens("show_reply_count", func(s *Settings) *bool { return &s.ShowReplyCount })

	AlwaysShowSpoilersFieldLens        = boolLens("always_show_spoilers_field", func(s *Settings) *bool { return &s.AlwaysShowSpoilersField })
	ConfirmMissingMediaDescriptionLens = boolLens("confirm_missing_media_description", func(s *Settings) *bool { return &s.ConfirmMissingMediaDescription })
	ConfirmBeforeClearingDraftLens     = boolLens("confirm_before_clearing_draft", func(s *Settings) *bool { return &s.ConfirmBeforeClearingDraft })
	PreselectOnReplyLens               = boolLens("preselect_on_reply", func(s *Settings) *bool { return &s.PreselectOnReply })
	InlinePreviewCardsLens             = boolLens("inline_preview_cards", func(s *Settings) *bool { return &s.InlinePreviewCards })

	ContentWarningsAutoUnfoldLens = boolLens("content_warnings.auto_unfold", func(s *Settings) *bool { return &s.ContentWarnings.AutoUnfold })
	ContentWarningsFilterLens     = stringLens("content_warnings.filter", func(s *Settings) *string { return &s.ContentWarnings.Filter })

	CollapsedEnabledLens       = boolLens("collapsed.enabled", func(s *Settings) *bool { return &s.Collapsed.Enabled })
	CollapsedShowActionBarLens = boolLens("collapsed.show_action_bar", func(s *Settings) *bool { return &s.Collapsed.ShowActionBar })
	CollapsedAutoAllLens       = boolLens("collapsed.auto.all", func(s *Settings) *bool { return &s.Collapsed.Auto.All })
	CollapsedAutoNotifsLens    = boolLens("collapsed.auto.notifications", func(s *Settings) *bool { return &s.Collapsed.Auto.Notifications })
	CollapsedAutoLengthyLens   = boolLens("collapsed.auto.lengthy", func(s *Settings) *bool { return &s.Collapsed.Auto.Lengthy })
	CollapsedAutoReblogsLens   = boolLens("collapsed.auto.reblogs", func(s *Settings) *bool { return &s.Collapsed.Auto.Reblogs })
	CollapsedAutoRepliesLens   = boolLens("collapsed.auto.replies", func(s *Settings) *bool { return &s.Collapsed.Auto.Replies })
	CollapsedAutoMediaLens     = boolLens("collapsed.auto.media", func(s *Settings) *bool { return &s.Collapsed.Auto.Media })
	CollapsedUserBgLens        = boolLens("collapsed.backgrounds.user_backgrounds", func(s *Settings) *bool { return &s.Collapsed.Backgrounds.UserBackgrounds })
	CollapsedPreviewImagesLens = boolLens("collapsed.backgrounds.preview_images", func(s *Settings) *bool { return &s.Collapsed.Backgrounds.PreviewImages })

	MediaLetterboxLens      = boolLens("media.letterbox", func(s *Settings) *bool { return &s.Media.Letterbox })
	MediaFullwidthLens      = boolLens("media.fullwidth", func(s *Settings) *bool { return &s.Media.Fullwidth })
	MediaRevealBehindCWLens = boolLens("media.reveal_behind_cw", func(s *Settings) *bool { return &s.Media.RevealBehindCW })

	NotificationsTabBadgeLens     = boolLens("notifications.tab_badge", func(s *Settings) *bool { return &s.Notifications.TabBadge })
	NotificationsFaviconBadgeLens = boolLens("notifications.favicon_badge", func(s *Settings) *bool { return &s.Notifications.FaviconBadge })

	HomeShowsReblogLens = boolLens("home.shows.reblog", func(s *Settings) *bool { return &s.Home.Shows.Reblog })
	HomeShowsReplyLens  = boolLens("home.shows.reply", func(s *Settings) *bool { return &s.Home.Shows.Reply })
	HomeShowsDirectLens = boolLens("home.shows.direct", func(s *Settings) *bool { return &s.Home.Shows.Direct })
	HomeRegexBodyLens   = stringLens("home.regex.body", func(s *Settings) *string { return &s.Home.Regex.Body })
)

var bindings = map[string]binding{}

func init() {
	for _, b := range []binding{
		LayoutLens, StretchLens, NavbarUnderLens, SwipeToChangeColumnsLens,
		SideArmLens, SideArmReplyModeLens, ShowReplyCountLens,
		AlwaysShowSpoilersFieldLens, ConfirmMissingMediaDescriptionLens,
		ConfirmBeforeClearingDraftLens, PreselectOnReplyLens, InlinePreviewCardsLens,
		ContentWarningsAutoUnfoldLens, ContentWarningsFilterLens,
		CollapsedEnabledLens, CollapsedShowActionBarLens,
		CollapsedAutoAllLens, CollapsedAutoNotifsLens, CollapsedAutoLengthyLens,
		CollapsedAutoReblogsLens, CollapsedAutoRepliesLens, CollapsedAutoMediaLens,
		CollapsedUserBgLens, CollapsedPreviewImagesLens,
		MediaLetterboxLens, MediaFullwidthLens, MediaRevealBehindCWLens,
		NotificationsTabBadgeLens, NotificationsFaviconBadgeLens,
		HomeShowsReblogLens, HomeShowsReplyLens, HomeShowsDirectLens, HomeRegexBodyLens,
	} {
		bindings[b.Path().String()] = b
	}
}

// Lookup resolves a path against a snapshot.
// Paths without a registered lens resolve to an absent (falsy) value.
func Lookup(s Settings, p Path) Value {
	b, ok := bindings[p.String()]
	if !ok {
		return Absent()
	}
	return b.getValue(s)
}

// KindOf returns the kind stored at p, or KindAbsent for unknown paths.
func KindOf(p Path) Kind {
	if b, ok := bindings[p.String()]; ok {
		return b.kind()
	}
	return KindAbsent
}

// Apply reduces a change into a new snapshot. The input snapshot is unchanged.
func Apply(s Settings, c Change) (Settings, error) {
	b, ok := bindings[c.Path.String()]
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownPath, c.Path)
	}
	return b.setValue(s, c.Value)
}

// Paths lists every addressable preference in lexical order.
func Paths() []Path {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	paths := make([]Path, len(keys))
	for i, k := range keys {
		paths[i] = ParsePath(k)
	}
	return paths
}

// Normalize runs every preference through its lens, the same way a change
// is applied, and returns the cleaned snapshot. Enumerated values outside
// their allowed set and oversized or invalid text are reported together.
func Normalize(s Settings) (Settings, error) {
	out := s
	var errs []error
	for _, p := range Paths() {
		b := bindings[p.String()]
		next, err := b.setValue(out, b.getValue(out))
		if err != nil {
			errs = append(errs, &ValidationError{Path: p, Value: b.getValue(s).Text(), Err: err})
			continue
		}
		out = next
	}
	if len(errs) > 0 {
		return Settings{}, &AggregateError{Errors: errs}
	}
	return out, nil
}

// Validate reports whether s would be accepted by Normalize.
func Validate(s Settings) error {
	_, err := Normalize(s)
	return err
}
