package teststreaming

import "github.com/flavioribeiro/nalscan/internal/entities"

// For debugging:
// use <-loglevel verbose>

// DO NOT REMOVE THE EXTRA SPACES ON THE END OF THESE LINES
var ffmpeg_input = ` 
	-hide_banner -loglevel error -nostats -y 
	-f lavfi -i testsrc2=size=320x180:rate=30:duration=1,format=yuv420p 
`

var ffmpeg_audio_input = ` 
	-f lavfi -i sine=frequency=1000:sample_rate=44100:duration=1 
`

var ffmpeg_x264 = ` 
	-c:v libx264 -preset veryfast -profile:v baseline 
	-x264opts keyint=15:min-keyint=15:scenecut=-1 
`

var FFMPEG_FILE_MP4_H264_AAC = testFFmpeg{
	arguments: ffmpeg_input + ffmpeg_audio_input + ffmpeg_x264 + ` 
		-c:a aac -b:a 96k -f mp4 
	`,
	name: "fixture.mp4",
	expectedStreams: []entities.Stream{
		entities.Stream{Codec: entities.H264, Type: entities.VideoType, Index: 0},
		entities.Stream{Codec: entities.AAC, Type: entities.AudioType, Index: 1},
	},
	expectedFormat: "mov,mp4,m4a,3gp,3g2,mj2",
}

// Annex B elementary stream, what the segmenter consumes directly.
var FFMPEG_FILE_RAW_H264 = testFFmpeg{
	arguments: ffmpeg_input + ffmpeg_x264 + ` 
		-an -f h264 
	`,
	name: "fixture.h264",
	expectedStreams: []entities.Stream{
		entities.Stream{Codec: entities.H264, Type: entities.VideoType, Index: 0},
	},
	expectedFormat: "h264",
}
