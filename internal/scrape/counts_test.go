package scrape

import "testing"

func TestNormalizeCount(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"42", 42},
		{"1.2k", 1200},
		{"1.2K", 1200},
		{"3M", 3000000},
		{"2.5m", 2500000},
		{"12,345", 12345},
		{"1 234", 1234},
		{"980", 980},
		{"", 0},
		{"garbage", 0},
		{"k", 0},
		{"12abc", 12},
	}

	for _, tc := range cases {
		if got := NormalizeCount(tc.raw); got != tc.want {
			t.Errorf("NormalizeCount(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestExtractCountsLocales(t *testing.T) {
	cases := []struct {
		name          string
		text          string
		wantFollowers int
		wantFollowing int
	}{
		{"english", "120 Following 4.5k Followers", 4500, 120},
		{"french", "98 Abonnements 1.2k Abonnés", 1200, 98},
		{"spanish", "50 Siguiendo 300 Seguidores", 300, 50},
		{"japanese", "12 フォロー中 3.4k フォロワー", 3400, 12},
		{"korean", "7 팔로잉 530 팔로워", 530, 7},
		{"chinese", "88 关注 2M 粉丝", 2000000, 88},
		{"german", "14 Gefolgt 999 Anhänger", 999, 14},
		{"missing", "nothing useful here", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			followers, following := ExtractCounts(tc.text)
			if followers != tc.wantFollowers {
				t.Errorf("followers = %d, want %d", followers, tc.wantFollowers)
			}
			if following != tc.wantFollowing {
				t.Errorf("following = %d, want %d", following, tc.wantFollowing)
			}
		})
	}
}

func TestExtractImages(t *testing.T) {
	text := `profile photo https://pbs.twimg.com/profile_images/123456/avatar_400x400.jpg and
header https://pbs.twimg.com/profile_banners/123456/1700000000/1500x500 trailing`

	avatar, banner := ExtractImages(text)
	if avatar != "https://pbs.twimg.com/profile_images/123456/avatar_400x400.jpg" {
		t.Errorf("unexpected avatar: %q", avatar)
	}
	if banner != "https://pbs.twimg.com/profile_banners/123456/1700000000/1500x500" {
		t.Errorf("unexpected banner: %q", banner)
	}

	avatar, banner = ExtractImages("no images at all")
	if avatar != "" || banner != "" {
		t.Errorf("expected empty results, got avatar=%q banner=%q", avatar, banner)
	}
}
