package models

// PredictRequest is the batch inference request sent to the model service
type PredictRequest struct {
	Instances [][]float32 `json:"instances"`
}

// PredictResponse carries one signing probability per instance
type PredictResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

// ModelHealthResponse is the health report of the Python model service
type ModelHealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Version     string `json:"version"`
}

// ResolvedFile describes one pose file matching a looked-up word
type ResolvedFile struct {
	Word             string `json:"word"`
	Category         string `json:"category,omitempty"`
	PoseFilename     string `json:"pose_filename"`
	FileExistsOnDisk bool   `json:"file_exists_on_disk"`
	URL              string `json:"url"`
}

// ResolveResponse is the word-lookup result
type ResolveResponse struct {
	Found   bool           `json:"found"`
	Source  string         `json:"source,omitempty"`
	Message string         `json:"message,omitempty"`
	Files   []ResolvedFile `json:"files"`
}

// PoseMetaResponse describes the recovered byte layout of one pose file
type PoseMetaResponse struct {
	Name       string `json:"name"`
	Offset     int    `json:"offset"`
	Frames     int    `json:"frames"`
	Landmarks  int    `json:"landmarks"`
	Pad        int    `json:"pad"`
	Size       int64  `json:"size"`
	FrameBytes int    `json:"frame_bytes"`
	PoseDir    string `json:"pose_dir"`
}

// WordRequest creates or updates a vocabulary entry
type WordRequest struct {
	Word         string `json:"word"`
	Category     string `json:"category,omitempty"`
	PoseFilename string `json:"pose_filename"`
}

// SentenceRequest asks for a signed sentence video from an ordered word list
type SentenceRequest struct {
	Words      []string `json:"words"`
	FPS        int      `json:"fps,omitempty"`
	OutputName string   `json:"output_name,omitempty"`
}

// SentenceResponse reports the produced video artifact
type SentenceResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	VideoName  string `json:"video_name,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`
	FrameCount int    `json:"frame_count,omitempty"`
	Words      int    `json:"words,omitempty"`
}

// HealthResponse is the service health report
type HealthResponse struct {
	Status             string `json:"status"`
	DatabaseConnected  bool   `json:"database_connected"`
	ModelServiceStatus string `json:"model_service_status"`
	PoseDirectoryPath  string `json:"pose_directory_path"`
	PoseDirectoryOK    bool   `json:"pose_directory_exists"`
}
