package chat

import "testing"

func testThreads() []Thread {
	return []Thread{
		{
			ID: "t1", Peer: "系统通知", Unread: true, LastTime: "09:41",
			History: []Message{{ID: "t1h1", Text: "您的帖子已通过审核。", Time: "09:41"}},
		},
		{
			ID: "t2", Peer: "张伟", LastTime: "昨天",
			History: []Message{{ID: "t2h1", Text: "请问那个键盘还在吗？", Time: "昨天"}},
		},
	}
}

func TestPreview(t *testing.T) {
	in := NewInbox(testThreads())
	th, _ := in.Thread("t2")
	if got := th.Preview(); got != "请问那个键盘还在吗？" {
		t.Errorf("Preview() = %q", got)
	}
	if got := (Thread{}).Preview(); got != "" {
		t.Errorf("empty thread Preview() = %q", got)
	}
}

func TestMarkRead(t *testing.T) {
	in := NewInbox(testThreads())
	in.MarkRead("t1")
	th, _ := in.Thread("t1")
	if th.Unread {
		t.Error("thread t1 still unread")
	}

	// Unknown id is a no-op.
	in.MarkRead("nope")
}

func TestSendAndReply(t *testing.T) {
	in := NewInbox(testThreads())

	sent, ok := in.Send("t2", "还在的，可以面交")
	if !ok {
		t.Fatal("Send to known thread failed")
	}
	if !sent.Mine || sent.Text != "还在的，可以面交" || sent.Time != "刚刚" {
		t.Errorf("sent message = %+v", sent)
	}
	if sent.ID == "" {
		t.Error("sent message has no id")
	}

	reply, ok := in.Reply("t2")
	if !ok {
		t.Fatal("Reply on known thread failed")
	}
	if reply.Mine {
		t.Error("auto-reply marked as mine")
	}
	if reply.Text != AutoReplyText {
		t.Errorf("reply text = %q, want %q", reply.Text, AutoReplyText)
	}

	th, _ := in.Thread("t2")
	if len(th.History) != 3 {
		t.Fatalf("history length = %d, want 3", len(th.History))
	}
	if th.History[1].ID == th.History[2].ID {
		t.Error("messages share an id")
	}
	if th.Preview() != AutoReplyText {
		t.Errorf("inbox preview = %q", th.Preview())
	}
	if th.LastTime != "刚刚" {
		t.Errorf("LastTime = %q", th.LastTime)
	}

	// The other thread is untouched.
	other, _ := in.Thread("t1")
	if len(other.History) != 1 {
		t.Errorf("t1 history length = %d", len(other.History))
	}
}

func TestSendUnknownThread(t *testing.T) {
	in := NewInbox(testThreads())
	if _, ok := in.Send("ghost", "hello"); ok {
		t.Error("Send to unknown thread reported success")
	}
	if _, ok := in.Reply("ghost"); ok {
		t.Error("Reply on unknown thread reported success")
	}
}

func TestFilterNotifications(t *testing.T) {
	items := []Notification{
		{ID: "n1", Type: NotificationLike},
		{ID: "n2", Type: NotificationComment, Content: "多少钱出？"},
		{ID: "n3", Type: NotificationLike},
	}

	likes := FilterNotifications(items, NotificationLike)
	if len(likes) != 2 || likes[0].ID != "n1" || likes[1].ID != "n3" {
		t.Errorf("likes = %+v", likes)
	}
	comments := FilterNotifications(items, NotificationComment)
	if len(comments) != 1 || comments[0].ID != "n2" {
		t.Errorf("comments = %+v", comments)
	}
}
