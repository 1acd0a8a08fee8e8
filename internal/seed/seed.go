// Package seed provides the in-memory mock data that initializes the shell:
// the session user, the post store contents, the inbox threads and the
// notification lists. The defaults are embedded; a YAML seed file can
// override them, and the watcher reloads the file on change in dev mode.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"campuslink/internal/chat"
	"campuslink/internal/feed"
	"campuslink/internal/logging"
	"campuslink/internal/session"
)

// Data is everything the shell needs at boot.
type Data struct {
	User          session.User        `yaml:"user"`
	Posts         []feed.Post         `yaml:"posts"`
	Threads       []chat.Thread       `yaml:"threads"`
	Notifications []chat.Notification `yaml:"notifications"`
	Schools       []string            `yaml:"schools"`
	SearchHistory []string            `yaml:"search_history"`
}

// Default returns the embedded seed data, freshly allocated on every call so
// callers can mutate their copy.
func Default() Data {
	me := session.User{
		ID:         "me",
		Name:       "陈同学",
		Avatar:     "https://picsum.photos/200/200",
		Verified:   true,
		Department: "计算机学院",
		School:     "福建商学院",
		Bio:        "好好学习，天天向上！努力成为全栈工程师。",
	}
	meAuthor := me.AuthorSnapshot()

	return Data{
		User: me,
		Posts: []feed.Post{
			{
				ID: "1",
				Author: feed.Author{
					ID: "u1", Name: "吉他社-张伟",
					Avatar: "https://picsum.photos/101/101", Verified: true, Department: "艺术学院",
				},
				Kind:     feed.KindSocial,
				Category: "活动",
				Body:     "🎵 这周末学校有草坪音乐节，大家记得来参加！我们在南操场等你。自带小板凳哦～",
				Attachments: []string{
					"https://picsum.photos/400/200",
					"https://picsum.photos/401/200",
				},
				Tags:      []string{"活动", "音乐节", "周末去哪儿"},
				LikeCount: 128, CommentCount: 32, ShareCount: 5,
				ViewCount: 2300,
				CreatedAt: "1小时前",
			},
			{
				ID:          "me1",
				Author:      meAuthor,
				Kind:        feed.KindSocial,
				Category:    "日常",
				Body:        "今天图书馆的晚霞也太美了吧！随手一拍就是大片。📸 #校园风景 #日落",
				Attachments: []string{"https://picsum.photos/400/250"},
				Tags:        []string{"摄影", "生活"},
				LikeCount:   45, CommentCount: 12, ShareCount: 2,
				ViewCount: 560,
				CreatedAt: "3小时前",
			},
			{
				ID: "m1",
				Author: feed.Author{
					ID: "u4", Name: "王大力",
					Avatar: "https://picsum.photos/102/102", Verified: true,
				},
				Kind:     feed.KindErrand,
				Category: "跑腿",
				Body:     "求代拿快递，东门菜鸟驿站，送到10号楼楼下。件不大。",
				Price:    5,
				Deadline: "今天 12:00 前",
				Tags:     []string{"跑腿", "代拿"},
				CommentCount: 2,
				CreatedAt:    "刚刚",
			},
			{
				ID:       "me2",
				Author:   meAuthor,
				Kind:     feed.KindTrade,
				Category: "闲置",
				Body:     "出考研英语复习资料，全新未拆封。买多了，低价出。",
				Price:    25,
				Tags:     []string{"考研", "书籍"},
				LikeCount: 5, CommentCount: 3,
				CreatedAt: "昨天",
			},
			{
				ID: "m2",
				Author: feed.Author{
					ID: "u5", Name: "小爱同学",
					Avatar: "https://picsum.photos/103/103", Verified: true,
				},
				Kind:        feed.KindTrade,
				Category:    "闲置",
				Body:        "毕业出闲置，九成新罗技机械键盘。送一个拔键器。",
				Price:       150,
				Attachments: []string{"https://picsum.photos/400/300"},
				Tags:        []string{"数码", "键盘"},
				LikeCount:   8, CommentCount: 5,
				CreatedAt: "2小时前",
			},
			{
				ID: "3",
				Author: feed.Author{
					ID: "u3", Name: "匿名用户", Avatar: "",
				},
				Kind:        feed.KindSocial,
				Category:    "问答",
				Body:        "求问学校附近的兼职，大二学生，课余时间比较多。",
				Tags:        []string{"兼职", "求助"},
				LikeCount:   15, CommentCount: 8,
				CreatedAt:   "4小时前",
				IsAnonymous: true,
			},
			{
				ID:       "me3",
				Author:   meAuthor,
				Kind:     feed.KindErrand,
				Category: "跑腿",
				Body:     "谁在第一食堂？求帮忙带一份黄焖鸡米饭，送到图书馆门口。",
				Price:    3,
				Deadline: "12:30前",
				Tags:     []string{"带饭"},
				LikeCount: 1, CommentCount: 1,
				CreatedAt: "昨天 11:30",
			},
		},
		Threads: []chat.Thread{
			{
				ID:       "t1",
				Peer:     "系统通知",
				Avatar:   "https://ui-avatars.com/api/?name=System&background=6366f1&color=fff&bold=true",
				Unread:   true,
				LastTime: "09:41",
				History: []chat.Message{
					{ID: "t1h1", Text: "恭喜！您的“寻物启事”帖子已通过审核。", Time: "09:41"},
				},
			},
			{
				ID:       "t2",
				Peer:     "张伟",
				Avatar:   "https://picsum.photos/101/101",
				LastTime: "昨天",
				History: []chat.Message{
					{ID: "t2h1", Text: "同学你好，请问那个键盘还在吗？", Time: "昨天"},
				},
			},
		},
		Notifications: []chat.Notification{
			{ID: "n1", Type: chat.NotificationLike, UserName: "吉他社-张伟", Avatar: "https://picsum.photos/101/101", Timestamp: "2小时前"},
			{ID: "n2", Type: chat.NotificationLike, UserName: "小爱同学", Avatar: "https://picsum.photos/103/103", Timestamp: "昨天"},
			{ID: "n3", Type: chat.NotificationComment, UserName: "王大力", Avatar: "https://picsum.photos/102/102", Content: "求私聊，多少钱出？", Timestamp: "3小时前"},
		},
		Schools: []string{
			"福建商学院", "北京大学", "清华大学", "复旦大学", "上海交通大学",
			"浙江大学", "南京大学", "武汉大学", "中山大学", "厦门大学", "福州大学",
		},
		SearchHistory: []string{"二手教材", "校园卡", "家教", "羽毛球"},
	}
}

// Load reads a seed file. A missing path falls back to the defaults; a file
// that exists but fails to parse is an error, not a silent fallback.
func Load(path string) (Data, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Seed("seed file %s not found, using defaults", path)
			return Default(), nil
		}
		return Data{}, fmt.Errorf("read seed file: %w", err)
	}
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	logging.Seed("loaded %d posts, %d threads from %s", len(d.Posts), len(d.Threads), path)
	return d, nil
}

// Save writes the data as YAML, used by the `seed` subcommand to dump the
// defaults as a starting point for customization.
func Save(path string, d Data) error {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal seed data: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	return nil
}
