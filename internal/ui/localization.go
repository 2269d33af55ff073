package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyCharacterList       = "character_list"
	KeyDeviceModel         = "device_model"
	KeyCharacterID         = "character_id"
	KeyCharacterIDHint     = "character_id_hint"
	KeyRefresh             = "refresh"
	KeyDownload            = "download"
	KeyShortcut            = "shortcut"
	KeySettings            = "settings"
	KeyFile                = "file"
	KeyLanguage            = "language"
	KeyLoadingPreview      = "loading_preview"
	KeyErrorLoadingPreview = "error_loading_preview"
	KeyDownloads           = "downloads"
	KeyReveal              = "reveal"
	KeyOpen                = "open"
	KeyStop                = "stop"
	KeyRetry               = "retry"
	KeyRemove              = "remove"
	KeyDownloadStarted     = "download_started"
	KeyDownloadCompleted   = "download_completed"
	KeyAlreadyInQueue      = "already_in_queue"
	KeyErrorOpeningFile    = "error_opening_file"
	KeyAPIBaseURL          = "api_base_url"
	KeyAPIKey              = "api_key"
	KeyDownloadDirectory   = "download_directory"
	KeyMaxParallel         = "max_parallel"
	KeyShortcutRefresh     = "shortcut_refresh"
	KeyAutoReveal          = "auto_reveal"
	KeySave                = "save"
	KeyCancel              = "cancel"
	KeyBrowse              = "browse"
	KeySettingsSaved       = "settings_saved"
	KeyInvalidURL          = "invalid_url"
	KeyShortcutScan        = "shortcut_scan"
	KeySaveShortcut        = "save_shortcut"
	KeyCopyLink            = "copy_link"
	KeyLinkCopied          = "link_copied"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:            "Hanja Wallpaper",
		KeyCharacterList:       "Character set",
		KeyDeviceModel:         "iPhone model",
		KeyCharacterID:         "Character ID",
		KeyCharacterIDHint:     "blank = random",
		KeyRefresh:             "New character",
		KeyDownload:            "Download PNG",
		KeyShortcut:            "Shortcut",
		KeySettings:            "Settings",
		KeyFile:                "File",
		KeyLanguage:            "Language",
		KeyLoadingPreview:      "Loading preview...",
		KeyErrorLoadingPreview: "Error loading preview",
		KeyDownloads:           "Downloads",
		KeyReveal:              "Reveal",
		KeyOpen:                "Open",
		KeyStop:                "Stop",
		KeyRetry:               "Retry",
		KeyRemove:              "Remove",
		KeyDownloadStarted:     "Download started",
		KeyDownloadCompleted:   "Wallpaper saved",
		KeyAlreadyInQueue:      "Already in queue",
		KeyErrorOpeningFile:    "Error opening file",
		KeyAPIBaseURL:          "API URL",
		KeyAPIKey:              "API key",
		KeyDownloadDirectory:   "Download Directory",
		KeyMaxParallel:         "Max Parallel Downloads",
		KeyShortcutRefresh:     "Shortcut refresh (minutes, 0 = off)",
		KeyAutoReveal:          "Reveal saved files",
		KeySave:                "Save",
		KeyCancel:              "Cancel",
		KeyBrowse:              "Browse",
		KeySettingsSaved:       "Settings saved successfully!",
		KeyInvalidURL:          "Invalid URL",
		KeyShortcutScan:        "Scan with your iPhone to install the shortcut",
		KeySaveShortcut:        "Save .shortcut",
		KeyCopyLink:            "Copy link",
		KeyLinkCopied:          "Link copied to clipboard",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:            "Обои Ханча",
		KeyCharacterList:       "Набор иероглифов",
		KeyDeviceModel:         "Модель iPhone",
		KeyCharacterID:         "ID иероглифа",
		KeyCharacterIDHint:     "пусто = случайный",
		KeyRefresh:             "Новый иероглиф",
		KeyDownload:            "Скачать PNG",
		KeyShortcut:            "Команда",
		KeySettings:            "Настройки",
		KeyFile:                "Файл",
		KeyLanguage:            "Язык",
		KeyLoadingPreview:      "Загрузка превью...",
		KeyErrorLoadingPreview: "Ошибка загрузки превью",
		KeyDownloads:           "Загрузки",
		KeyReveal:              "Показать",
		KeyOpen:                "Открыть",
		KeyStop:                "Стоп",
		KeyRetry:               "Повторить",
		KeyRemove:              "Удалить",
		KeyDownloadStarted:     "Загрузка начата",
		KeyDownloadCompleted:   "Обои сохранены",
		KeyAlreadyInQueue:      "Уже в очереди",
		KeyErrorOpeningFile:    "Ошибка открытия файла",
		KeyAPIBaseURL:          "URL API",
		KeyAPIKey:              "Ключ API",
		KeyDownloadDirectory:   "Папка загрузки",
		KeyMaxParallel:         "Макс. параллельных",
		KeyShortcutRefresh:     "Обновление команды (минуты, 0 = выкл)",
		KeyAutoReveal:          "Показывать сохранённые файлы",
		KeySave:                "Сохранить",
		KeyCancel:              "Отмена",
		KeyBrowse:              "Обзор",
		KeySettingsSaved:       "Настройки успешно сохранены!",
		KeyInvalidURL:          "Неверный URL",
		KeyShortcutScan:        "Отсканируйте iPhone, чтобы установить команду",
		KeySaveShortcut:        "Сохранить .shortcut",
		KeyCopyLink:            "Копировать ссылку",
		KeyLinkCopied:          "Ссылка скопирована",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:            "Papel de Parede Hanja",
		KeyCharacterList:       "Conjunto de caracteres",
		KeyDeviceModel:         "Modelo do iPhone",
		KeyCharacterID:         "ID do caractere",
		KeyCharacterIDHint:     "vazio = aleatório",
		KeyRefresh:             "Novo caractere",
		KeyDownload:            "Baixar PNG",
		KeyShortcut:            "Atalho",
		KeySettings:            "Configurações",
		KeyFile:                "Arquivo",
		KeyLanguage:            "Idioma",
		KeyLoadingPreview:      "Carregando prévia...",
		KeyErrorLoadingPreview: "Erro ao carregar prévia",
		KeyDownloads:           "Downloads",
		KeyReveal:              "Mostrar",
		KeyOpen:                "Abrir",
		KeyStop:                "Parar",
		KeyRetry:               "Repetir",
		KeyRemove:              "Remover",
		KeyDownloadStarted:     "Download iniciado",
		KeyDownloadCompleted:   "Papel de parede salvo",
		KeyAlreadyInQueue:      "Já na fila",
		KeyErrorOpeningFile:    "Erro ao abrir arquivo",
		KeyAPIBaseURL:          "URL da API",
		KeyAPIKey:              "Chave da API",
		KeyDownloadDirectory:   "Diretório de Download",
		KeyMaxParallel:         "Max Downloads Paralelos",
		KeyShortcutRefresh:     "Atualização do atalho (minutos, 0 = desligado)",
		KeyAutoReveal:          "Mostrar arquivos salvos",
		KeySave:                "Salvar",
		KeyCancel:              "Cancelar",
		KeyBrowse:              "Navegar",
		KeySettingsSaved:       "Configurações salvas com sucesso!",
		KeyInvalidURL:          "URL inválida",
		KeyShortcutScan:        "Escaneie com o iPhone para instalar o atalho",
		KeySaveShortcut:        "Salvar .shortcut",
		KeyCopyLink:            "Copiar link",
		KeyLinkCopied:          "Link copiado",
	}
}
