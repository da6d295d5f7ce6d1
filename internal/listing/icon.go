package listing

import (
	"path/filepath"
	"strings"
)

const (
	dirIcon  = "📁"
	fileIcon = "📄"
)

var icons = map[string]string{
	".html": "🌐", ".htm": "🌐", ".css": "🎨", ".js": "📜", ".ts": "📘",
	".json": "📋", ".xml": "📋", ".yaml": "📋", ".md": "📝", ".txt": "📄",
	".pdf": "📕", ".jpg": "🖼️", ".jpeg": "🖼️", ".png": "🖼️", ".gif": "🖼️",
	".mp4": "🎬", ".mp3": "🎵", ".zip": "📦", ".tar": "📦", ".gz": "📦",
	".go": "🐹", ".py": "🐍", ".java": "☕", ".php": "🐘", ".rb": "💎",
}

func iconFor(name string) string {
	if icon, ok := icons[strings.ToLower(filepath.Ext(name))]; ok {
		return icon
	}
	return fileIcon
}
