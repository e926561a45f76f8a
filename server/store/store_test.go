package store

import (
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/mentorhub/relay/server/store/mock_store"
	"github.com/mentorhub/relay/server/store/types"
)

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, defaultPageSize},
		{-5, -1, 1, defaultPageSize},
		{3, 10, 3, 10},
		{1, maxPageSize, 1, maxPageSize},
		{1, maxPageSize + 1, 1, maxPageSize},
		{2, 100000, 2, maxPageSize},
	}
	for _, tc := range cases {
		page, limit := clampPage(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Errorf("clampPage(%d, %d): expected (%d, %d), got (%d, %d)",
				tc.page, tc.limit, tc.wantPage, tc.wantLimit, page, limit)
		}
	}
}

func TestNotificationCreateValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := mock_store.NewMockPersistentStorageInterface(ctrl)
	Store = ss
	defer func() {
		Store = storeObj{}
		ctrl.Finish()
	}()
	ss.EXPECT().GetUid().Return(types.Uid(42)).AnyTimes()

	receivers := []types.Uid{types.Uid(1)}

	// Unknown event tag.
	if _, err := Notifications.Create(&types.Notification{
		What: "unheard-of", ContentKind: "post",
	}, receivers); err != types.ErrMalformed {
		t.Errorf("Unknown tag: expected ErrMalformed, got %v", err)
	}

	// Content kind outside the allow-list.
	if _, err := Notifications.Create(&types.Notification{
		What: types.NotifPost, ContentKind: "executable",
	}, receivers); err != types.ErrPolicy {
		t.Errorf("Bad content kind: expected ErrPolicy, got %v", err)
	}

	// No receivers.
	if _, err := Notifications.Create(&types.Notification{
		What: types.NotifPost, ContentKind: "post",
	}, nil); err != types.ErrPolicy {
		t.Errorf("No receivers: expected ErrPolicy, got %v", err)
	}

	// All receivers invalid after dedupe.
	if _, err := Notifications.Create(&types.Notification{
		What: types.NotifPost, ContentKind: "post",
	}, []types.Uid{types.ZeroUid, types.ZeroUid}); err != types.ErrPolicy {
		t.Errorf("Zero receivers: expected ErrPolicy, got %v", err)
	}
}

func TestConversationWithSelfRejected(t *testing.T) {
	uid := types.Uid(7)
	if _, err := Conversations.AccessOrCreate(uid, uid); err != types.ErrMalformed {
		t.Errorf("Conversation with self: expected ErrMalformed, got %v", err)
	}
}

func TestMessageSendEmptyContentRejected(t *testing.T) {
	if _, err := Messages.Send("p2pxxxx", types.Uid(1), ""); err != types.ErrMalformed {
		t.Errorf("Empty content: expected ErrMalformed, got %v", err)
	}
}

func TestGroupCreateEmptyNameRejected(t *testing.T) {
	if _, err := Groups.Create("", nil); err != types.ErrMalformed {
		t.Errorf("Empty group name: expected ErrMalformed, got %v", err)
	}
}
